package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// PostDisburseNativePayload is the request body for POST /api/v1/disburse/native.
type PostDisburseNativePayload struct {
	// Account funding the disbursement (hex address)
	// Required: true
	Sender *string `json:"sender"`

	// Recipient accounts, one per amount (hex addresses)
	// Required: true
	Recipients []string `json:"recipients"`

	// Amounts in native base units (decimal strings), one per recipient
	// Required: true
	Amounts []string `json:"amounts"`

	// Native value supplied with the call, must cover the requested total;
	// any surplus is refunded to the sender
	// Required: true
	SuppliedValue *string `json:"suppliedValue"`
}

// Validate validates this post disburse native payload
func (m *PostDisburseNativePayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("sender", "body", m.Sender); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("recipients", "body", m.Recipients); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("amounts", "body", m.Amounts); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("suppliedValue", "body", m.SuppliedValue); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// PostDisburseTokenPayload is the request body for POST /api/v1/disburse/token
// and POST /api/v1/disburse/token/direct.
type PostDisburseTokenPayload struct {
	// Token contract reference (hex address)
	// Required: true
	Asset *string `json:"asset"`

	// Account funding the disbursement; must have approved the disburser
	// Required: true
	Sender *string `json:"sender"`

	// Recipient accounts, one per amount (hex addresses)
	// Required: true
	Recipients []string `json:"recipients"`

	// Amounts in token base units (decimal strings), one per recipient
	// Required: true
	Amounts []string `json:"amounts"`
}

// Validate validates this post disburse token payload
func (m *PostDisburseTokenPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("asset", "body", m.Asset); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("sender", "body", m.Sender); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("recipients", "body", m.Recipients); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("amounts", "body", m.Amounts); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// DisbursementResponse confirms a completed disbursement.
type DisbursementResponse struct {
	// Sum of all requested amounts (decimal string)
	// Required: true
	Total *string `json:"total"`

	// Surplus returned to the sender (decimal string, "0" for token paths)
	// Required: true
	Refund *string `json:"refund"`

	// Number of recipients credited
	// Required: true
	Recipients *int64 `json:"recipients"`
}

// Validate validates this disbursement response
func (m *DisbursementResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("total", "body", m.Total); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("refund", "body", m.Refund); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("recipients", "body", m.Recipients); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}
