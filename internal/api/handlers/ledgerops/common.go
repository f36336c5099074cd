package ledgerops

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github/chapool/go-disperse/internal/api/httperrors"
	"github/chapool/go-disperse/internal/types"
)

func parseAddressParam(c echo.Context, param string) (common.Address, error) {
	value := c.QueryParam(param)
	if !common.IsHexAddress(value) {
		return common.Address{}, httperrors.NewHTTPValidationError(
			http.StatusBadRequest,
			types.PublicHTTPErrorTypeGeneric,
			http.StatusText(http.StatusBadRequest),
			[]*types.HTTPValidationErrorDetail{
				{
					Key:   swag.String(param),
					In:    swag.String("query"),
					Error: swag.String("must be a hex address"),
				},
			},
		)
	}

	return common.HexToAddress(value), nil
}
