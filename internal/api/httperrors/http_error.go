package httperrors

import (
	"fmt"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github/chapool/go-disperse/internal/types"
)

// HTTPError extends the public error payload with internals only surfaced in
// logs, never in responses.
type HTTPError struct {
	types.PublicHTTPError
	Internal       error
	AdditionalData map[string]interface{}
}

func NewHTTPError(code int, errorType string, title string) *HTTPError {
	return &HTTPError{
		PublicHTTPError: types.PublicHTTPError{
			Code:  swag.Int64(int64(code)),
			Type:  swag.String(errorType),
			Title: swag.String(title),
		},
	}
}

func NewHTTPErrorWithDetail(code int, errorType string, title string, detail error) *HTTPError {
	return &HTTPError{
		PublicHTTPError: types.PublicHTTPError{
			Code:  swag.Int64(int64(code)),
			Type:  swag.String(errorType),
			Title: swag.String(title),
		},
		Internal: detail,
	}
}

// NewFromEcho converts an echo.HTTPError into our HTTPError representation.
func NewFromEcho(e *echo.HTTPError) *HTTPError {
	return NewHTTPError(e.Code, types.PublicHTTPErrorTypeGeneric, fmt.Sprintf("%v", e.Message))
}

func (e *HTTPError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("HTTPError %d (%s): %s - %v", *e.Code, *e.Type, *e.Title, e.Internal)
	}

	return fmt.Sprintf("HTTPError %d (%s): %s", *e.Code, *e.Type, *e.Title)
}

// HTTPValidationError carries per-field validation failures.
type HTTPValidationError struct {
	types.PublicHTTPValidationError
	Internal       error
	AdditionalData map[string]interface{}
}

func NewHTTPValidationError(code int, errorType string, title string, validationErrors []*types.HTTPValidationErrorDetail) *HTTPValidationError {
	return &HTTPValidationError{
		PublicHTTPValidationError: types.PublicHTTPValidationError{
			PublicHTTPError: types.PublicHTTPError{
				Code:  swag.Int64(int64(code)),
				Type:  swag.String(errorType),
				Title: swag.String(title),
			},
			ValidationErrors: validationErrors,
		},
	}
}

func (e *HTTPValidationError) Error() string {
	return fmt.Sprintf("HTTPValidationError %d (%s): %s (%d fields)", *e.Code, *e.Type, *e.Title, len(e.ValidationErrors))
}
