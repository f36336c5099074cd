package ledgerops

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github/chapool/go-disperse/internal/api"
	"github/chapool/go-disperse/internal/api/httperrors"
	"github/chapool/go-disperse/internal/types"
	"github/chapool/go-disperse/internal/util"
)

func GetAllowanceRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Ledger.GET("/allowance", getAllowanceHandler(s))
}

func getAllowanceHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		asset, err := parseAddressParam(c, "asset")
		if err != nil {
			return err
		}

		owner, err := parseAddressParam(c, "owner")
		if err != nil {
			return err
		}

		spender, err := parseAddressParam(c, "spender")
		if err != nil {
			return err
		}

		allowance, err := s.Ledger.AllowanceOf(ctx, asset, owner, spender)
		if err != nil {
			log.Error().Err(err).Msg("Failed to read allowance")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to read allowance")
		}

		response := &types.AllowanceResponse{
			Asset:     swag.String(asset.Hex()),
			Owner:     swag.String(owner.Hex()),
			Spender:   swag.String(spender.Hex()),
			Allowance: swag.String(allowance.String()),
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
