// Package ledgerops exposes read and approval operations against the ledger
// collaborator, mainly to inspect the effects of disbursements.
package ledgerops

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github/chapool/go-disperse/internal/api"
	"github/chapool/go-disperse/internal/api/httperrors"
	"github/chapool/go-disperse/internal/types"
	"github/chapool/go-disperse/internal/util"
)

func GetBalanceRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Ledger.GET("/balance", getBalanceHandler(s))
}

// getBalanceHandler returns the native balance of an address, or its token
// balance when the asset query parameter is set.
func getBalanceHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		address, err := parseAddressParam(c, "address")
		if err != nil {
			return err
		}

		var balance *big.Int
		assetParam := c.QueryParam("asset")

		if assetParam == "" {
			balance, err = s.Ledger.NativeBalanceOf(ctx, address)
		} else {
			var asset common.Address
			asset, err = parseAddressParam(c, "asset")
			if err != nil {
				return err
			}
			balance, err = s.Ledger.TokenBalanceOf(ctx, asset, address)
		}

		if err != nil {
			log.Error().Err(err).Msg("Failed to read balance")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to read balance")
		}

		response := &types.BalanceResponse{
			Address: swag.String(address.Hex()),
			Asset:   assetParam,
			Balance: swag.String(balance.String()),
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
