package disburse

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/chapool/go-disperse/internal/api"
	"github/chapool/go-disperse/internal/util"
)

func PostDisburseTokenDirectRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Disbursements.POST("/token/direct", postDisburseTokenDirectHandler(s))
}

// postDisburseTokenDirectHandler runs the direct strategy: one
// allowance-consuming transfer per recipient, no custody balance. Exposed as
// a distinct operation so the caller can pick a strategy by batch size.
func postDisburseTokenDirectHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		asset, sender, req, err := bindTokenDisbursement(c)
		if err != nil {
			return err
		}

		receipt, err := s.Disburse.DisburseTokenDirect(ctx, asset, sender, req)
		if err != nil {
			return mapDisburseError(c, err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, disbursementResponse(receipt))
	}
}
