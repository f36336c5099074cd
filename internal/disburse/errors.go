package disburse

import "github.com/pkg/errors"

// Validation failures. Funding and transfer failures surface as the ledger
// package's error kinds, wrapped with call context.
var (
	// ErrArrayLengthMismatch signals recipients and amounts disagree in
	// length, or either is empty.
	ErrArrayLengthMismatch = errors.New("recipients and amounts must be non-empty and of equal length")

	// ErrInvalidValue signals a zero amount entry.
	ErrInvalidValue = errors.New("amount must be greater than zero")

	// ErrInvalidRecipient signals a zero-address recipient entry.
	ErrInvalidRecipient = errors.New("recipient must not be the zero address")

	// ErrInsufficientValue signals the supplied native value does not cover
	// the requested total.
	ErrInsufficientValue = errors.New("supplied value is less than the requested total")
)
