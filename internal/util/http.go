package util

import (
	"errors"
	"net/http"

	openapierrors "github.com/go-openapi/errors"
	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github/chapool/go-disperse/internal/api/httperrors"
	"github/chapool/go-disperse/internal/types"
)

// BindAndValidateBody binds the request body to v and runs its swagger
// validation, returning an HTTPValidationError listing every offending field.
func BindAndValidateBody(c echo.Context, v runtime.Validatable) error {
	binder := c.Echo().Binder.(*echo.DefaultBinder)

	if err := binder.BindBody(c, v); err != nil {
		return err
	}

	return validatePayload(c, v)
}

// ValidateAndReturn validates the response payload against its own swagger
// schema before writing it, so we never emit a response violating our API.
func ValidateAndReturn(c echo.Context, code int, v runtime.Validatable) error {
	if err := v.Validate(strfmt.Default); err != nil {
		return err
	}

	return c.JSON(code, v)
}

func validatePayload(c echo.Context, v runtime.Validatable) error {
	if err := v.Validate(strfmt.Default); err != nil {
		var compositeError *openapierrors.CompositeError
		if errors.As(err, &compositeError) {
			LogFromContext(c.Request().Context()).Debug().Errs("validation_errors", compositeError.Errors).Msg("Payload did match schema, returning HTTP validation error")

			valErrs := formatValidationErrors(compositeError)

			return httperrors.NewHTTPValidationError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusBadRequest), valErrs)
		}

		var validationError *openapierrors.Validation
		if errors.As(err, &validationError) {
			LogFromContext(c.Request().Context()).Debug().AnErr("validation_error", validationError).Msg("Payload did match schema, returning HTTP validation error")

			valErrs := []*types.HTTPValidationErrorDetail{
				{
					Key:   swag.String(validationError.Name),
					In:    swag.String(validationError.In),
					Error: swag.String(validationError.Error()),
				},
			}

			return httperrors.NewHTTPValidationError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusBadRequest), valErrs)
		}

		return err
	}

	return nil
}

func formatValidationErrors(compositeError *openapierrors.CompositeError) []*types.HTTPValidationErrorDetail {
	valErrs := make([]*types.HTTPValidationErrorDetail, 0, len(compositeError.Errors))
	for _, err := range compositeError.Errors {
		var validationError *openapierrors.Validation
		if errors.As(err, &validationError) {
			valErrs = append(valErrs, &types.HTTPValidationErrorDetail{
				Key:   swag.String(validationError.Name),
				In:    swag.String(validationError.In),
				Error: swag.String(validationError.Error()),
			})
			continue
		}

		valErrs = append(valErrs, &types.HTTPValidationErrorDetail{
			Key:   swag.String("unknown"),
			In:    swag.String("body"),
			Error: swag.String(err.Error()),
		})
	}

	return valErrs
}
