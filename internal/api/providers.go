package api

import (
	"database/sql"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github/chapool/go-disperse/internal/config"
	"github/chapool/go-disperse/internal/disburse"
	"github/chapool/go-disperse/internal/ledger"
	"github/chapool/go-disperse/internal/ledger/memledger"
	"github/chapool/go-disperse/internal/ledger/pgledger"
)

// NewLedger provides the ledger collaborator selected by the config.
//
//nolint:ireturn // Returning interface is intentional
func NewLedger(cfg config.Server) (ledger.Ledger, error) {
	switch cfg.Ledger.Backend {
	case "memory":
		log.Info().Msg("Using in-memory ledger")
		return memledger.New(), nil

	case "postgres":
		db, err := sql.Open("postgres", cfg.Database.ConnectionString())
		if err != nil {
			return nil, errors.Wrap(err, "failed to open database")
		}

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

		log.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.Database).Msg("Using postgres ledger")

		return pgledger.New(db), nil

	default:
		return nil, errors.Errorf("unknown ledger backend: %q", cfg.Ledger.Backend)
	}
}

// NewDisburseService provides the disbursement service bound to the
// configured custody account.
//
//nolint:ireturn // Returning interface is intentional
func NewDisburseService(cfg config.Server, l ledger.Ledger) (DisburseService, error) {
	if !common.IsHexAddress(cfg.Ledger.CustodyAddress) {
		return nil, errors.Errorf("invalid custody address: %q", cfg.Ledger.CustodyAddress)
	}

	custody := common.HexToAddress(cfg.Ledger.CustodyAddress)
	if custody == (common.Address{}) {
		return nil, errors.New("custody address must not be the zero address")
	}

	return disburse.NewService(l, custody), nil
}
