package ledger

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Ledger is the external collaborator holding all account state. The
// disburser never mutates balances or allowances except through a Tx.
type Ledger interface {
	// Begin opens a ledger transaction. Every mutation staged on the
	// returned Tx becomes visible only at Commit; Rollback (or never
	// committing) leaves the ledger exactly as it was.
	Begin(ctx context.Context) (Tx, error)

	// NativeBalanceOf returns the committed native balance of account.
	NativeBalanceOf(ctx context.Context, account common.Address) (*big.Int, error)

	// TokenBalanceOf returns the committed token balance of account.
	TokenBalanceOf(ctx context.Context, asset, account common.Address) (*big.Int, error)

	// AllowanceOf returns the committed allowance owner has granted spender.
	AllowanceOf(ctx context.Context, asset, owner, spender common.Address) (*big.Int, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases the backing store.
	Close() error
}

// Tx is a single atomic unit of ledger work. Implementations must guarantee
// that no staged transfer is observable by any reader before Commit returns.
type Tx interface {
	// TransferNative moves native units from one account to another.
	// Fails with ErrInsufficientBalance when from cannot cover amount and
	// with ErrTransferRejected when to refuses the credit.
	TransferNative(ctx context.Context, from, to common.Address, amount *big.Int) error

	// TransferToken moves token units of asset from one account to another
	// on behalf of spender. When from differs from spender, the move
	// consumes allowance granted by from to spender and fails with
	// ErrInsufficientAllowance if it does not cover amount.
	TransferToken(ctx context.Context, asset, spender, from, to common.Address, amount *big.Int) error

	// Approve replaces the allowance owner grants spender for asset.
	Approve(ctx context.Context, asset, owner, spender common.Address, amount *big.Int) error

	// NativeBalanceOf returns the tx-local native balance of account.
	NativeBalanceOf(ctx context.Context, account common.Address) (*big.Int, error)

	// TokenBalanceOf returns the tx-local token balance of account.
	TokenBalanceOf(ctx context.Context, asset, account common.Address) (*big.Int, error)

	// AllowanceOf returns the tx-local allowance owner has granted spender.
	AllowanceOf(ctx context.Context, asset, owner, spender common.Address) (*big.Int, error)

	// Commit publishes all staged mutations at once.
	Commit() error

	// Rollback discards all staged mutations. Calling it after Commit is a
	// no-op, allowing the usual deferred-rollback pattern.
	Rollback() error
}
