package disburse

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/chapool/go-disperse/internal/api"
	"github/chapool/go-disperse/internal/types"
	"github/chapool/go-disperse/internal/util"
)

func PostDisburseNativeRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Disbursements.POST("/native", postDisburseNativeHandler(s))
}

func postDisburseNativeHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostDisburseNativePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		sender, err := parseAddress("sender", *body.Sender)
		if err != nil {
			return err
		}

		supplied, err := parseAmount("suppliedValue", *body.SuppliedValue)
		if err != nil {
			return err
		}

		req, err := parseRequest(body.Recipients, body.Amounts)
		if err != nil {
			return err
		}

		receipt, err := s.Disburse.DisburseNative(ctx, sender, req, supplied)
		if err != nil {
			return mapDisburseError(c, err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, disbursementResponse(receipt))
	}
}
