package router

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github/chapool/go-disperse/internal/api/httperrors"
	"github/chapool/go-disperse/internal/types"
)

// HTTPErrorHandler renders every error bubbling out of a handler as a
// PublicHTTPError payload. Internals are only exposed when
// hideInternalServerErrorDetails is disabled (local development).
func HTTPErrorHandler(hideInternalServerErrorDetails bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var code int
		var payload interface{}

		var httpValidationError *httperrors.HTTPValidationError
		var httpError *httperrors.HTTPError
		var echoError *echo.HTTPError

		switch {
		case errors.As(err, &httpValidationError):
			code = int(*httpValidationError.Code)
			payload = &httpValidationError.PublicHTTPValidationError

		case errors.As(err, &httpError):
			code = int(*httpError.Code)
			payload = &httpError.PublicHTTPError

		case errors.As(err, &echoError):
			converted := httperrors.NewFromEcho(echoError)
			code = int(*converted.Code)
			payload = &converted.PublicHTTPError

		default:
			converted := httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusInternalServerError))
			if !hideInternalServerErrorDetails {
				converted.Internal = err
				converted.Title = swagTitle(err)
			}

			code = int(*converted.Code)
			payload = &converted.PublicHTTPError
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, payload)
		}

		if writeErr != nil {
			log.Error().Err(writeErr).Msg("Failed to write error response")
		}
	}
}

func swagTitle(err error) *string {
	title := err.Error()
	return &title
}
