package disburse

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"

	"github/chapool/go-disperse/internal/api"
	disbursesvc "github/chapool/go-disperse/internal/disburse"
	"github/chapool/go-disperse/internal/types"
	"github/chapool/go-disperse/internal/util"
)

func PostDisburseTokenRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Disbursements.POST("/token", postDisburseTokenHandler(s))
}

// postDisburseTokenHandler runs the custody strategy: a single
// allowance-consuming pull followed by one push per recipient.
func postDisburseTokenHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		asset, sender, req, err := bindTokenDisbursement(c)
		if err != nil {
			return err
		}

		receipt, err := s.Disburse.DisburseToken(ctx, asset, sender, req)
		if err != nil {
			return mapDisburseError(c, err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, disbursementResponse(receipt))
	}
}

func bindTokenDisbursement(c echo.Context) (common.Address, common.Address, *disbursesvc.Request, error) {
	var body types.PostDisburseTokenPayload
	if err := util.BindAndValidateBody(c, &body); err != nil {
		return common.Address{}, common.Address{}, nil, err
	}

	asset, err := parseAddress("asset", *body.Asset)
	if err != nil {
		return common.Address{}, common.Address{}, nil, err
	}

	sender, err := parseAddress("sender", *body.Sender)
	if err != nil {
		return common.Address{}, common.Address{}, nil, err
	}

	req, err := parseRequest(body.Recipients, body.Amounts)
	if err != nil {
		return common.Address{}, common.Address{}, nil, err
	}

	return asset, sender, req, nil
}
