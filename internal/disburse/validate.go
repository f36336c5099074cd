package disburse

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

var zeroAddress = common.Address{}

// isValidRecipient is the single predicate deciding recipient validity; the
// zero address is reserved and never a legal destination.
func isValidRecipient(recipient common.Address) bool {
	return recipient != zeroAddress
}

// validate checks the whole request before any transfer is attempted and
// returns the requested total. It is pure: running it twice on the same
// request yields the same outcome, and a rejection implies nothing has been
// moved yet.
//
// supplied is only inspected for the native path; token callers pass nil.
// Check order is fixed so the reported kind is deterministic when a request
// violates several rules at once: length, amounts, recipients, supplied
// value.
func validate(req *Request, supplied *big.Int) (*big.Int, error) {
	if len(req.Recipients) == 0 || len(req.Recipients) != len(req.Amounts) {
		return nil, errors.Wrapf(ErrArrayLengthMismatch, "%d recipients, %d amounts", len(req.Recipients), len(req.Amounts))
	}

	total := new(big.Int)
	for i, amount := range req.Amounts {
		if amount == nil || amount.Sign() <= 0 {
			return nil, errors.Wrapf(ErrInvalidValue, "amount at index %d", i)
		}
		total.Add(total, amount)
	}

	for i, recipient := range req.Recipients {
		if !isValidRecipient(recipient) {
			return nil, errors.Wrapf(ErrInvalidRecipient, "recipient at index %d", i)
		}
	}

	if supplied != nil && supplied.Cmp(total) < 0 {
		return nil, errors.Wrapf(ErrInsufficientValue, "supplied %s, requested %s", supplied.String(), total.String())
	}

	return total, nil
}
