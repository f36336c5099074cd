package ledger

import "github.com/pkg/errors"

var (
	// ErrInsufficientBalance signals the debited account cannot cover the
	// transfer amount.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInsufficientAllowance signals the consumed allowance does not
	// cover the transfer amount.
	ErrInsufficientAllowance = errors.New("insufficient allowance")

	// ErrTransferRejected signals the credited account refused the
	// transfer.
	ErrTransferRejected = errors.New("transfer rejected by recipient")

	// ErrTxDone signals use of a transaction that was already committed or
	// rolled back.
	ErrTxDone = errors.New("ledger transaction already closed")

	// ErrInvalidAmount signals a negative transfer or approval amount.
	ErrInvalidAmount = errors.New("amount must not be negative")
)
