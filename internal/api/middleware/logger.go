package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github/chapool/go-disperse/internal/config"
	"github/chapool/go-disperse/internal/util"
)

// Logger attaches a request-scoped zerolog logger to the request context and
// emits one log line per handled request at the configured level.
func Logger(cfg config.LoggerServer) echo.MiddlewareFunc {
	level := util.LogLevelFromString(cfg.RequestLevel)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			l := log.With().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("request_id", req.Header.Get(echo.HeaderXRequestID)).
				Logger()

			c.SetRequest(req.WithContext(util.WithLogger(req.Context(), &l)))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			l.WithLevel(level).
				Int("status", c.Response().Status).
				Dur("duration", time.Since(start)).
				Msg("Handled request")

			return err
		}
	}
}
