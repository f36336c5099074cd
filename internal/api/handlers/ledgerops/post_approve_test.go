package ledgerops_test

import (
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github/chapool/go-disperse/internal/api"
	"github/chapool/go-disperse/internal/test"
	"github/chapool/go-disperse/internal/types"
)

func TestPostApproveAndGetAllowance(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		custody := common.HexToAddress(s.Config.Ledger.CustodyAddress)

		payload := test.GenericPayload{
			"asset":  asset.Hex(),
			"owner":  account.Hex(),
			"amount": "500",
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/ledger/approve", payload, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var approved types.AllowanceResponse
		test.ParseResponseAndValidate(t, res, &approved)
		require.Equal(t, custody.Hex(), *approved.Spender)
		require.Equal(t, "500", *approved.Allowance)

		path := "/api/v1/ledger/allowance?asset=" + asset.Hex() + "&owner=" + account.Hex() + "&spender=" + custody.Hex()
		res = test.PerformRequest(t, s, "GET", path, nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var allowance types.AllowanceResponse
		test.ParseResponseAndValidate(t, res, &allowance)
		require.Equal(t, "500", *allowance.Allowance)
	})
}

func TestPostApproveReplacesAllowance(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		for _, amount := range []string{"500", "20"} {
			payload := test.GenericPayload{
				"asset":  asset.Hex(),
				"owner":  account.Hex(),
				"amount": amount,
			}

			res := test.PerformRequest(t, s, "POST", "/api/v1/ledger/approve", payload, nil)
			require.Equal(t, http.StatusOK, res.Result().StatusCode)
		}

		custody := common.HexToAddress(s.Config.Ledger.CustodyAddress)
		path := "/api/v1/ledger/allowance?asset=" + asset.Hex() + "&owner=" + account.Hex() + "&spender=" + custody.Hex()
		res := test.PerformRequest(t, s, "GET", path, nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		// Approve overwrites, it does not accumulate.
		var allowance types.AllowanceResponse
		test.ParseResponseAndValidate(t, res, &allowance)
		require.Equal(t, "20", *allowance.Allowance)
	})
}

func TestPostApproveRejectsNegativeAmount(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := test.GenericPayload{
			"asset":  asset.Hex(),
			"owner":  account.Hex(),
			"amount": "-1",
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/ledger/approve", payload, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}
