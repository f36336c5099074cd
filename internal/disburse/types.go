package disburse

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Request is a single batch disbursement: amounts[i] goes to recipients[i].
// Requests are transient; nothing about them is persisted past the call.
type Request struct {
	Recipients []common.Address
	Amounts    []*big.Int
}

// Receipt confirms a completed disbursement.
type Receipt struct {
	// Total is the sum of all requested amounts.
	Total *big.Int
	// Refund is the native surplus returned to the sender. Always zero for
	// the token operations.
	Refund *big.Int
	// Recipients is the number of accounts credited.
	Recipients int
}
