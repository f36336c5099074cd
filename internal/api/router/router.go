package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github/chapool/go-disperse/internal/api"
	"github/chapool/go-disperse/internal/api/handlers/common"
	"github/chapool/go-disperse/internal/api/handlers/disburse"
	"github/chapool/go-disperse/internal/api/handlers/ledgerops"
	"github/chapool/go-disperse/internal/api/middleware"
)

// Init attaches the echo instance, middleware stack and all routes to the
// server.
func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = s.Config.Echo.Debug
	s.Echo.HideBanner = true
	s.Echo.HidePort = true

	s.Echo.HTTPErrorHandler = HTTPErrorHandler(s.Config.Echo.HideInternalServerErrorDetails)

	if s.Config.Echo.EnableTrailingSlashMiddleware {
		s.Echo.Pre(echoMiddleware.RemoveTrailingSlash())
	}

	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(echoMiddleware.Recover())
	}

	if s.Config.Echo.EnableRequestLoggerMiddleware {
		s.Echo.Use(middleware.Logger(s.Config.Logger))
	}

	s.Router = &api.Router{
		Routes:             nil, // will be initialized below
		Root:               s.Echo.Group(""),
		Management:         s.Echo.Group("/-"),
		APIV1Disbursements: s.Echo.Group("/api/v1/disburse"),
		APIV1Ledger:        s.Echo.Group("/api/v1/ledger"),
	}

	s.Router.Routes = []*echo.Route{
		common.GetHealthyRoute(s),
		common.GetReadyRoute(s),
		disburse.PostDisburseNativeRoute(s),
		disburse.PostDisburseTokenRoute(s),
		disburse.PostDisburseTokenDirectRoute(s),
		ledgerops.GetBalanceRoute(s),
		ledgerops.GetAllowanceRoute(s),
		ledgerops.PostApproveRoute(s),
	}
}
