package disburse_test

import (
	"context"
	"math/big"
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github/chapool/go-disperse/internal/api"
	"github/chapool/go-disperse/internal/api/httperrors"
	"github/chapool/go-disperse/internal/test"
	"github/chapool/go-disperse/internal/types"
)

var asset = common.HexToAddress("0x000000000000000000000000000000000000Ec20")

// approveCustody grants the configured custody account an allowance on behalf
// of owner through the public approve operation.
func approveCustody(t *testing.T, s *api.Server, owner common.Address, amount string) {
	t.Helper()

	payload := test.GenericPayload{
		"asset":  asset.Hex(),
		"owner":  owner.Hex(),
		"amount": amount,
	}

	res := test.PerformRequest(t, s, "POST", "/api/v1/ledger/approve", payload, nil)
	require.Equal(t, http.StatusOK, res.Result().StatusCode)
}

func TestPostDisburseToken(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		ctx := context.Background()
		l := test.Memledger(t, s)
		l.Mint(asset, sender, big.NewInt(100))
		approveCustody(t, s, sender, "30")

		payload := test.GenericPayload{
			"asset":      asset.Hex(),
			"sender":     sender.Hex(),
			"recipients": []string{recipientA.Hex(), recipientB.Hex()},
			"amounts":    []string{"10", "20"},
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/disburse/token", payload, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.DisbursementResponse
		test.ParseResponseAndValidate(t, res, &response)
		require.Equal(t, "30", *response.Total)
		require.Equal(t, "0", *response.Refund)
		require.EqualValues(t, 2, *response.Recipients)

		balance, err := l.TokenBalanceOf(ctx, asset, recipientA)
		require.NoError(t, err)
		require.Equal(t, "10", balance.String())

		balance, err = l.TokenBalanceOf(ctx, asset, recipientB)
		require.NoError(t, err)
		require.Equal(t, "20", balance.String())

		balance, err = l.TokenBalanceOf(ctx, asset, sender)
		require.NoError(t, err)
		require.Equal(t, "70", balance.String())

		// The pull consumed the full allowance.
		custody := common.HexToAddress(s.Config.Ledger.CustodyAddress)
		allowance, err := l.AllowanceOf(ctx, asset, sender, custody)
		require.NoError(t, err)
		require.Equal(t, "0", allowance.String())

		// Nothing remains parked in custody.
		balance, err = l.TokenBalanceOf(ctx, asset, custody)
		require.NoError(t, err)
		require.Equal(t, "0", balance.String())
	})
}

func TestPostDisburseTokenInsufficientAllowance(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		ctx := context.Background()
		l := test.Memledger(t, s)
		l.Mint(asset, sender, big.NewInt(100))
		approveCustody(t, s, sender, "29")

		payload := test.GenericPayload{
			"asset":      asset.Hex(),
			"sender":     sender.Hex(),
			"recipients": []string{recipientA.Hex(), recipientB.Hex()},
			"amounts":    []string{"10", "20"},
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/disburse/token", payload, nil)
		test.RequireHTTPError(t, res, httperrors.ErrConflictInsufficientAllowance)

		balance, err := l.TokenBalanceOf(ctx, asset, sender)
		require.NoError(t, err)
		require.Equal(t, "100", balance.String())
	})
}

func TestPostDisburseTokenInsufficientBalance(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		l := test.Memledger(t, s)
		l.Mint(asset, sender, big.NewInt(25))
		approveCustody(t, s, sender, "30")

		payload := test.GenericPayload{
			"asset":      asset.Hex(),
			"sender":     sender.Hex(),
			"recipients": []string{recipientA.Hex(), recipientB.Hex()},
			"amounts":    []string{"10", "20"},
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/disburse/token", payload, nil)
		test.RequireHTTPError(t, res, httperrors.ErrConflictInsufficientBalance)
	})
}

func TestPostDisburseTokenDirect(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		ctx := context.Background()
		l := test.Memledger(t, s)
		l.Mint(asset, sender, big.NewInt(100))
		approveCustody(t, s, sender, "30")

		payload := test.GenericPayload{
			"asset":      asset.Hex(),
			"sender":     sender.Hex(),
			"recipients": []string{recipientA.Hex(), recipientB.Hex()},
			"amounts":    []string{"10", "20"},
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/disburse/token/direct", payload, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.DisbursementResponse
		test.ParseResponseAndValidate(t, res, &response)
		require.Equal(t, "30", *response.Total)
		require.EqualValues(t, 2, *response.Recipients)

		balance, err := l.TokenBalanceOf(ctx, asset, recipientA)
		require.NoError(t, err)
		require.Equal(t, "10", balance.String())

		balance, err = l.TokenBalanceOf(ctx, asset, recipientB)
		require.NoError(t, err)
		require.Equal(t, "20", balance.String())
	})
}

func TestPostDisburseTokenAbortsOnRejectedRecipient(t *testing.T) {
	paths := []string{
		"/api/v1/disburse/token",
		"/api/v1/disburse/token/direct",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			test.WithTestServer(t, func(s *api.Server) {
				ctx := context.Background()
				l := test.Memledger(t, s)
				l.Mint(asset, sender, big.NewInt(100))
				l.SetRejecting(recipientB, true)
				approveCustody(t, s, sender, "30")

				payload := test.GenericPayload{
					"asset":      asset.Hex(),
					"sender":     sender.Hex(),
					"recipients": []string{recipientA.Hex(), recipientB.Hex()},
					"amounts":    []string{"10", "20"},
				}

				res := test.PerformRequest(t, s, "POST", path, payload, nil)
				test.RequireHTTPError(t, res, httperrors.ErrConflictTransferFailure)

				// The earlier transfer to recipientA must be rolled back too.
				balance, err := l.TokenBalanceOf(ctx, asset, recipientA)
				require.NoError(t, err)
				require.Equal(t, "0", balance.String())

				balance, err = l.TokenBalanceOf(ctx, asset, sender)
				require.NoError(t, err)
				require.Equal(t, "100", balance.String())
			})
		})
	}
}
