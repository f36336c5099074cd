package disburse

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github/chapool/go-disperse/internal/ledger"
)

// Service performs batch value disbursements. Every operation is atomic: on
// any failure the whole ledger transaction is rolled back and no account
// balance changes.
type Service interface {
	// DisburseNative moves amounts[i] of native currency from sender to
	// recipients[i] and refunds supplied minus the requested total.
	DisburseNative(ctx context.Context, sender common.Address, req *Request, supplied *big.Int) (*Receipt, error)

	// DisburseToken pulls the requested total from sender into custody in
	// one allowance-consuming transfer, then pushes each amount out.
	DisburseToken(ctx context.Context, asset, sender common.Address, req *Request) (*Receipt, error)

	// DisburseTokenDirect moves each amount straight from sender to its
	// recipient, consuming allowance per transfer. Cheaper than
	// DisburseToken for small batches, costlier for large ones.
	DisburseTokenDirect(ctx context.Context, asset, sender common.Address, req *Request) (*Receipt, error)
}

type service struct {
	ledger  ledger.Ledger
	custody common.Address
}

// NewService creates a disbursement service holding transient funds on the
// custody account.
//
//nolint:ireturn // Returning interface is intentional
func NewService(l ledger.Ledger, custody common.Address) Service {
	return &service{
		ledger:  l,
		custody: custody,
	}
}

// DisburseNative validates, pulls the supplied value from the sender into
// custody, credits every recipient in request order and finally refunds the
// surplus. All of it happens inside one ledger transaction.
func (s *service) DisburseNative(ctx context.Context, sender common.Address, req *Request, supplied *big.Int) (*Receipt, error) {
	total, err := validate(req, supplied)
	if err != nil {
		return nil, err
	}

	tx, err := s.ledger.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin ledger transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.TransferNative(ctx, sender, s.custody, supplied); err != nil {
		return nil, errors.Wrap(err, "failed to collect supplied value")
	}

	for i, recipient := range req.Recipients {
		if err := tx.TransferNative(ctx, s.custody, recipient, req.Amounts[i]); err != nil {
			return nil, errors.Wrapf(err, "failed to credit recipient %d", i)
		}
	}

	refund := new(big.Int).Sub(supplied, total)
	if refund.Sign() > 0 {
		if err := tx.TransferNative(ctx, s.custody, sender, refund); err != nil {
			return nil, errors.Wrap(err, "failed to refund surplus")
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit ledger transaction")
	}

	log.Info().
		Str("sender", sender.Hex()).
		Int("recipients", len(req.Recipients)).
		Str("total", total.String()).
		Str("refund", refund.String()).
		Msg("Native disbursement completed")

	return &Receipt{Total: total, Refund: refund, Recipients: len(req.Recipients)}, nil
}

// DisburseToken validates, then performs a single allowance-consuming pull of
// the requested total into custody followed by one push per recipient. One
// authorization check regardless of batch size, at the cost of transiently
// holding the whole sum; the custody balance is exactly zero again on commit.
func (s *service) DisburseToken(ctx context.Context, asset, sender common.Address, req *Request) (*Receipt, error) {
	total, err := validate(req, nil)
	if err != nil {
		return nil, err
	}

	tx, err := s.ledger.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin ledger transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.TransferToken(ctx, asset, s.custody, sender, s.custody, total); err != nil {
		return nil, errors.Wrap(err, "failed to pull requested total into custody")
	}

	for i, recipient := range req.Recipients {
		if err := tx.TransferToken(ctx, asset, s.custody, s.custody, recipient, req.Amounts[i]); err != nil {
			return nil, errors.Wrapf(err, "failed to credit recipient %d", i)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit ledger transaction")
	}

	log.Info().
		Str("asset", asset.Hex()).
		Str("sender", sender.Hex()).
		Int("recipients", len(req.Recipients)).
		Str("total", total.String()).
		Msg("Token disbursement completed")

	return &Receipt{Total: total, Refund: new(big.Int), Recipients: len(req.Recipients)}, nil
}

// DisburseTokenDirect validates, then moves each amount straight from the
// sender to its recipient. N authorization checks instead of one, but no
// custody balance ever exists.
func (s *service) DisburseTokenDirect(ctx context.Context, asset, sender common.Address, req *Request) (*Receipt, error) {
	total, err := validate(req, nil)
	if err != nil {
		return nil, err
	}

	tx, err := s.ledger.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin ledger transaction")
	}
	defer func() { _ = tx.Rollback() }()

	for i, recipient := range req.Recipients {
		if err := tx.TransferToken(ctx, asset, s.custody, sender, recipient, req.Amounts[i]); err != nil {
			return nil, errors.Wrapf(err, "failed to credit recipient %d", i)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit ledger transaction")
	}

	log.Info().
		Str("asset", asset.Hex()).
		Str("sender", sender.Hex()).
		Int("recipients", len(req.Recipients)).
		Str("total", total.String()).
		Msg("Direct token disbursement completed")

	return &Receipt{Total: total, Refund: new(big.Int), Recipients: len(req.Recipients)}, nil
}
