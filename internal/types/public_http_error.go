package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
)

// Public API error types, referenced by clients to react on specific
// well-known failure kinds.
const (
	PublicHTTPErrorTypeGeneric               = "generic"
	PublicHTTPErrorTypeARRAYLENGTHMISMATCH   = "ARRAY_LENGTH_MISMATCH"
	PublicHTTPErrorTypeINVALIDVALUE          = "INVALID_VALUE"
	PublicHTTPErrorTypeINVALIDRECIPIENT      = "INVALID_RECIPIENT"
	PublicHTTPErrorTypeINSUFFICIENTVALUE     = "INSUFFICIENT_VALUE"
	PublicHTTPErrorTypeINSUFFICIENTALLOWANCE = "INSUFFICIENT_ALLOWANCE"
	PublicHTTPErrorTypeINSUFFICIENTBALANCE   = "INSUFFICIENT_BALANCE"
	PublicHTTPErrorTypeTRANSFERFAILURE       = "TRANSFER_FAILURE"
)

// PublicHTTPError is the generic error response payload.
type PublicHTTPError struct {
	// HTTP status code returned for the error
	// Required: true
	Code *int64 `json:"status"`

	// Type of error returned, should be used for client-side error handling
	// Required: true
	Type *string `json:"type"`

	// More detailed, human-readable, optional explanation of the error
	// Required: true
	Title *string `json:"title"`
}

// Validate validates this public Http error
func (m *PublicHTTPError) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("status", "body", m.Code); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("type", "body", m.Type); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("title", "body", m.Title); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// HTTPValidationErrorDetail describes a single failed payload field.
type HTTPValidationErrorDetail struct {
	// Key of field failing validation
	// Required: true
	Key *string `json:"key"`

	// Location of field failing validation
	// Required: true
	In *string `json:"in"`

	// Error describing field validation failure
	// Required: true
	Error *string `json:"error"`
}

// PublicHTTPValidationError extends PublicHTTPError with per-field details.
type PublicHTTPValidationError struct {
	PublicHTTPError

	// List of errors received while validating payload against schema
	ValidationErrors []*HTTPValidationErrorDetail `json:"validationErrors"`
}

// Validate validates this public Http validation error
func (m *PublicHTTPValidationError) Validate(formats strfmt.Registry) error {
	if err := m.PublicHTTPError.Validate(formats); err != nil {
		return err
	}

	var res []error

	for i := range m.ValidationErrors {
		if m.ValidationErrors[i] == nil {
			continue
		}

		if err := validate.Required("validationErrors"+"."+swag.FormatInt64(int64(i))+"."+"key", "body", m.ValidationErrors[i].Key); err != nil {
			res = append(res, err)
		}
		if err := validate.Required("validationErrors"+"."+swag.FormatInt64(int64(i))+"."+"in", "body", m.ValidationErrors[i].In); err != nil {
			res = append(res, err)
		}
		if err := validate.Required("validationErrors"+"."+swag.FormatInt64(int64(i))+"."+"error", "body", m.ValidationErrors[i].Error); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}
