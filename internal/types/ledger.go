package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// BalanceResponse is returned by GET /api/v1/ledger/balance.
type BalanceResponse struct {
	// Queried account (hex address)
	// Required: true
	Address *string `json:"address"`

	// Token contract reference; empty for the native balance
	Asset string `json:"asset,omitempty"`

	// Balance in base units (decimal string)
	// Required: true
	Balance *string `json:"balance"`
}

// Validate validates this balance response
func (m *BalanceResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("address", "body", m.Address); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("balance", "body", m.Balance); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// AllowanceResponse is returned by GET /api/v1/ledger/allowance.
type AllowanceResponse struct {
	// Token contract reference (hex address)
	// Required: true
	Asset *string `json:"asset"`

	// Account granting the allowance
	// Required: true
	Owner *string `json:"owner"`

	// Account allowed to spend
	// Required: true
	Spender *string `json:"spender"`

	// Remaining allowance in base units (decimal string)
	// Required: true
	Allowance *string `json:"allowance"`
}

// Validate validates this allowance response
func (m *AllowanceResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("asset", "body", m.Asset); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("owner", "body", m.Owner); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("spender", "body", m.Spender); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("allowance", "body", m.Allowance); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// PostApprovePayload is the request body for POST /api/v1/ledger/approve.
// The spender is always the disburser custody account.
type PostApprovePayload struct {
	// Token contract reference (hex address)
	// Required: true
	Asset *string `json:"asset"`

	// Account granting the allowance
	// Required: true
	Owner *string `json:"owner"`

	// Allowance in base units (decimal string), replaces the previous value
	// Required: true
	Amount *string `json:"amount"`
}

// Validate validates this post approve payload
func (m *PostApprovePayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("asset", "body", m.Asset); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("owner", "body", m.Owner); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("amount", "body", m.Amount); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}
