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

func PostApproveRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Ledger.POST("/approve", postApproveHandler(s))
}

// postApproveHandler grants the disburser custody account an allowance on
// behalf of the owner, the prerequisite of both token disbursement
// strategies.
func postApproveHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostApprovePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		asset, err := parseAddressBody("asset", *body.Asset)
		if err != nil {
			return err
		}

		owner, err := parseAddressBody("owner", *body.Owner)
		if err != nil {
			return err
		}

		amount, ok := new(big.Int).SetString(*body.Amount, 10)
		if !ok || amount.Sign() < 0 {
			return parseAmountError("amount")
		}

		spender := common.HexToAddress(s.Config.Ledger.CustodyAddress)

		tx, err := s.Ledger.Begin(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to begin ledger transaction")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to set allowance")
		}
		defer func() { _ = tx.Rollback() }()

		if err := tx.Approve(ctx, asset, owner, spender, amount); err != nil {
			log.Error().Err(err).Msg("Failed to set allowance")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to set allowance")
		}

		if err := tx.Commit(); err != nil {
			log.Error().Err(err).Msg("Failed to commit allowance")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to set allowance")
		}

		response := &types.AllowanceResponse{
			Asset:     swag.String(asset.Hex()),
			Owner:     swag.String(owner.Hex()),
			Spender:   swag.String(spender.Hex()),
			Allowance: swag.String(amount.String()),
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}

func parseAddressBody(field string, value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, newBodyValidationError(field, "must be a hex address")
	}

	return common.HexToAddress(value), nil
}

func parseAmountError(field string) error {
	return newBodyValidationError(field, "must be a non-negative base 10 integer")
}

func newBodyValidationError(field string, reason string) error {
	return httperrors.NewHTTPValidationError(
		http.StatusBadRequest,
		types.PublicHTTPErrorTypeGeneric,
		http.StatusText(http.StatusBadRequest),
		[]*types.HTTPValidationErrorDetail{
			{
				Key:   swag.String(field),
				In:    swag.String("body"),
				Error: swag.String(reason),
			},
		},
	)
}
