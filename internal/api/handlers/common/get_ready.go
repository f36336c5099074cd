package common

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/chapool/go-disperse/internal/api"
	"github/chapool/go-disperse/internal/util"
)

func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

// getReadyHandler is the readiness probe: the server must be fully
// initialized and the ledger backend reachable.
func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.Ready() {
			return c.String(521, "Not ready.")
		}

		if err := s.Ledger.Ping(c.Request().Context()); err != nil {
			util.LogFromContext(c.Request().Context()).Warn().Err(err).Msg("Ledger is not reachable")
			return c.String(521, "Not ready.")
		}

		return c.String(http.StatusOK, "Ready.")
	}
}
