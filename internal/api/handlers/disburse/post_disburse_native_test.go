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

var (
	sender     = common.HexToAddress("0x00000000000000000000000000000000000000A1")
	recipientA = common.HexToAddress("0x00000000000000000000000000000000000000B1")
	recipientB = common.HexToAddress("0x00000000000000000000000000000000000000B2")
)

func TestPostDisburseNative(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		ctx := context.Background()
		l := test.Memledger(t, s)
		l.SetNativeBalance(sender, big.NewInt(100))

		payload := test.GenericPayload{
			"sender":        sender.Hex(),
			"recipients":    []string{recipientA.Hex(), recipientB.Hex()},
			"amounts":       []string{"10", "20"},
			"suppliedValue": "30",
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/disburse/native", payload, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.DisbursementResponse
		test.ParseResponseAndValidate(t, res, &response)
		require.Equal(t, "30", *response.Total)
		require.Equal(t, "0", *response.Refund)
		require.EqualValues(t, 2, *response.Recipients)

		balance, err := l.NativeBalanceOf(ctx, recipientA)
		require.NoError(t, err)
		require.Equal(t, "10", balance.String())

		balance, err = l.NativeBalanceOf(ctx, recipientB)
		require.NoError(t, err)
		require.Equal(t, "20", balance.String())

		balance, err = l.NativeBalanceOf(ctx, sender)
		require.NoError(t, err)
		require.Equal(t, "70", balance.String())
	})
}

func TestPostDisburseNativeRefundsSurplus(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		ctx := context.Background()
		l := test.Memledger(t, s)
		l.SetNativeBalance(sender, big.NewInt(100))

		payload := test.GenericPayload{
			"sender":        sender.Hex(),
			"recipients":    []string{recipientA.Hex()},
			"amounts":       []string{"10"},
			"suppliedValue": "50",
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/disburse/native", payload, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.DisbursementResponse
		test.ParseResponseAndValidate(t, res, &response)
		require.Equal(t, "10", *response.Total)
		require.Equal(t, "40", *response.Refund)

		// The surplus returns to the sender, only the total leaves.
		balance, err := l.NativeBalanceOf(ctx, sender)
		require.NoError(t, err)
		require.Equal(t, "90", balance.String())
	})
}

func TestPostDisburseNativeValidationRejections(t *testing.T) {
	tests := []struct {
		name     string
		payload  test.GenericPayload
		expected *httperrors.HTTPError
	}{
		{
			name: "LengthMismatch",
			payload: test.GenericPayload{
				"sender":        sender.Hex(),
				"recipients":    []string{recipientA.Hex(), recipientB.Hex()},
				"amounts":       []string{"10"},
				"suppliedValue": "10",
			},
			expected: httperrors.ErrBadRequestArrayLengthMismatch,
		},
		{
			name: "EmptyBatch",
			payload: test.GenericPayload{
				"sender":        sender.Hex(),
				"recipients":    []string{},
				"amounts":       []string{},
				"suppliedValue": "0",
			},
			expected: httperrors.ErrBadRequestArrayLengthMismatch,
		},
		{
			name: "ZeroAmount",
			payload: test.GenericPayload{
				"sender":        sender.Hex(),
				"recipients":    []string{recipientA.Hex(), recipientB.Hex()},
				"amounts":       []string{"10", "0"},
				"suppliedValue": "10",
			},
			expected: httperrors.ErrBadRequestInvalidValue,
		},
		{
			name: "ZeroAddressRecipient",
			payload: test.GenericPayload{
				"sender":        sender.Hex(),
				"recipients":    []string{recipientA.Hex(), common.Address{}.Hex()},
				"amounts":       []string{"10", "20"},
				"suppliedValue": "30",
			},
			expected: httperrors.ErrBadRequestInvalidRecipient,
		},
		{
			name: "InsufficientSuppliedValue",
			payload: test.GenericPayload{
				"sender":        sender.Hex(),
				"recipients":    []string{recipientA.Hex(), recipientB.Hex()},
				"amounts":       []string{"10", "20"},
				"suppliedValue": "29",
			},
			expected: httperrors.ErrBadRequestInsufficientValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.WithTestServer(t, func(s *api.Server) {
				ctx := context.Background()
				l := test.Memledger(t, s)
				l.SetNativeBalance(sender, big.NewInt(100))

				res := test.PerformRequest(t, s, "POST", "/api/v1/disburse/native", tt.payload, nil)
				test.RequireHTTPError(t, res, tt.expected)

				// A rejected batch must not move any value.
				balance, err := l.NativeBalanceOf(ctx, sender)
				require.NoError(t, err)
				require.Equal(t, "100", balance.String())

				balance, err = l.NativeBalanceOf(ctx, recipientA)
				require.NoError(t, err)
				require.Equal(t, "0", balance.String())
			})
		})
	}
}

func TestPostDisburseNativeInsufficientSenderBalance(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		l := test.Memledger(t, s)
		l.SetNativeBalance(sender, big.NewInt(5))

		payload := test.GenericPayload{
			"sender":        sender.Hex(),
			"recipients":    []string{recipientA.Hex()},
			"amounts":       []string{"10"},
			"suppliedValue": "10",
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/disburse/native", payload, nil)
		test.RequireHTTPError(t, res, httperrors.ErrConflictInsufficientBalance)
	})
}

func TestPostDisburseNativeMalformedPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload test.GenericPayload
	}{
		{
			name: "BadSenderAddress",
			payload: test.GenericPayload{
				"sender":        "not-an-address",
				"recipients":    []string{recipientA.Hex()},
				"amounts":       []string{"10"},
				"suppliedValue": "10",
			},
		},
		{
			name: "BadAmountEncoding",
			payload: test.GenericPayload{
				"sender":        sender.Hex(),
				"recipients":    []string{recipientA.Hex()},
				"amounts":       []string{"ten"},
				"suppliedValue": "10",
			},
		},
		{
			name: "MissingSuppliedValue",
			payload: test.GenericPayload{
				"sender":     sender.Hex(),
				"recipients": []string{recipientA.Hex()},
				"amounts":    []string{"10"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.WithTestServer(t, func(s *api.Server) {
				res := test.PerformRequest(t, s, "POST", "/api/v1/disburse/native", tt.payload, nil)
				require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
			})
		})
	}
}
