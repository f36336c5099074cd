// Package memledger provides an in-memory ledger.Ledger. Mutations are
// staged on a transaction-local overlay and published atomically at Commit,
// so a failed disbursement never leaves partial balance changes behind.
package memledger

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github/chapool/go-disperse/internal/ledger"
)

type tokenKey struct {
	asset   common.Address
	account common.Address
}

type allowanceKey struct {
	asset   common.Address
	owner   common.Address
	spender common.Address
}

// Ledger is an in-memory ledger. A transaction holds the ledger lock from
// Begin until Commit or Rollback, so transactions are strictly serialized and
// no reader ever observes intermediate state.
type Ledger struct {
	mu         sync.Mutex
	native     map[common.Address]*big.Int
	tokens     map[tokenKey]*big.Int
	allowances map[allowanceKey]*big.Int
	rejecting  map[common.Address]bool
}

var _ ledger.Ledger = (*Ledger)(nil)

// New returns an empty in-memory ledger.
func New() *Ledger {
	return &Ledger{
		native:     make(map[common.Address]*big.Int),
		tokens:     make(map[tokenKey]*big.Int),
		allowances: make(map[allowanceKey]*big.Int),
		rejecting:  make(map[common.Address]bool),
	}
}

// SetNativeBalance replaces the committed native balance of account.
// Seeding helper, not part of the ledger.Ledger contract.
func (l *Ledger) SetNativeBalance(account common.Address, amount *big.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.native[account] = new(big.Int).Set(amount)
}

// Mint credits token units of asset to account.
// Seeding helper, not part of the ledger.Ledger contract.
func (l *Ledger) Mint(asset, account common.Address, amount *big.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := tokenKey{asset: asset, account: account}
	l.tokens[key] = new(big.Int).Add(l.valueOf(l.tokens, key), amount)
}

// SetRejecting marks account as refusing every incoming credit, so tests can
// force transfer failures mid-batch.
func (l *Ledger) SetRejecting(account common.Address, reject bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rejecting[account] = reject
}

func (l *Ledger) valueOf(m map[tokenKey]*big.Int, key tokenKey) *big.Int {
	if v, ok := m[key]; ok {
		return v
	}
	return big.NewInt(0)
}

// Begin opens a transaction. The ledger lock is held until the transaction
// is closed.
func (l *Ledger) Begin(_ context.Context) (ledger.Tx, error) {
	l.mu.Lock()

	return &memTx{
		ledger:     l,
		native:     make(map[common.Address]*big.Int),
		tokens:     make(map[tokenKey]*big.Int),
		allowances: make(map[allowanceKey]*big.Int),
	}, nil
}

func (l *Ledger) NativeBalanceOf(_ context.Context, account common.Address) (*big.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.native[account]; ok {
		return new(big.Int).Set(v), nil
	}
	return big.NewInt(0), nil
}

func (l *Ledger) TokenBalanceOf(_ context.Context, asset, account common.Address) (*big.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.tokens[tokenKey{asset: asset, account: account}]; ok {
		return new(big.Int).Set(v), nil
	}
	return big.NewInt(0), nil
}

func (l *Ledger) AllowanceOf(_ context.Context, asset, owner, spender common.Address) (*big.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.allowances[allowanceKey{asset: asset, owner: owner, spender: spender}]; ok {
		return new(big.Int).Set(v), nil
	}
	return big.NewInt(0), nil
}

func (l *Ledger) Ping(_ context.Context) error {
	return nil
}

func (l *Ledger) Close() error {
	return nil
}

// memTx stages mutations in overlay maps; reads fall through to the
// committed state. Commit copies the overlay into the ledger in one step.
type memTx struct {
	ledger     *Ledger
	native     map[common.Address]*big.Int
	tokens     map[tokenKey]*big.Int
	allowances map[allowanceKey]*big.Int
	done       bool
}

func (tx *memTx) nativeOf(account common.Address) *big.Int {
	if v, ok := tx.native[account]; ok {
		return v
	}
	if v, ok := tx.ledger.native[account]; ok {
		return v
	}
	return big.NewInt(0)
}

func (tx *memTx) tokenOf(key tokenKey) *big.Int {
	if v, ok := tx.tokens[key]; ok {
		return v
	}
	if v, ok := tx.ledger.tokens[key]; ok {
		return v
	}
	return big.NewInt(0)
}

func (tx *memTx) allowanceOf(key allowanceKey) *big.Int {
	if v, ok := tx.allowances[key]; ok {
		return v
	}
	if v, ok := tx.ledger.allowances[key]; ok {
		return v
	}
	return big.NewInt(0)
}

func (tx *memTx) TransferNative(_ context.Context, from, to common.Address, amount *big.Int) error {
	if tx.done {
		return ledger.ErrTxDone
	}
	if amount.Sign() < 0 {
		return ledger.ErrInvalidAmount
	}
	if tx.ledger.rejecting[to] {
		return errors.Wrapf(ledger.ErrTransferRejected, "native credit to %s", to.Hex())
	}

	fromBalance := tx.nativeOf(from)
	if fromBalance.Cmp(amount) < 0 {
		return errors.Wrapf(ledger.ErrInsufficientBalance, "account %s holds %s, needs %s", from.Hex(), fromBalance.String(), amount.String())
	}

	tx.native[from] = new(big.Int).Sub(fromBalance, amount)
	tx.native[to] = new(big.Int).Add(tx.nativeOf(to), amount)

	return nil
}

func (tx *memTx) TransferToken(_ context.Context, asset, spender, from, to common.Address, amount *big.Int) error {
	if tx.done {
		return ledger.ErrTxDone
	}
	if amount.Sign() < 0 {
		return ledger.ErrInvalidAmount
	}
	if tx.ledger.rejecting[to] {
		return errors.Wrapf(ledger.ErrTransferRejected, "token credit to %s", to.Hex())
	}

	// The transferFrom rule: moving someone else's balance consumes the
	// allowance they granted the spender.
	if from != spender {
		key := allowanceKey{asset: asset, owner: from, spender: spender}
		allowance := tx.allowanceOf(key)
		if allowance.Cmp(amount) < 0 {
			return errors.Wrapf(ledger.ErrInsufficientAllowance, "owner %s granted %s, needs %s", from.Hex(), allowance.String(), amount.String())
		}
		tx.allowances[key] = new(big.Int).Sub(allowance, amount)
	}

	fromKey := tokenKey{asset: asset, account: from}
	fromBalance := tx.tokenOf(fromKey)
	if fromBalance.Cmp(amount) < 0 {
		return errors.Wrapf(ledger.ErrInsufficientBalance, "account %s holds %s, needs %s", from.Hex(), fromBalance.String(), amount.String())
	}

	toKey := tokenKey{asset: asset, account: to}
	tx.tokens[fromKey] = new(big.Int).Sub(fromBalance, amount)
	tx.tokens[toKey] = new(big.Int).Add(tx.tokenOf(toKey), amount)

	return nil
}

func (tx *memTx) Approve(_ context.Context, asset, owner, spender common.Address, amount *big.Int) error {
	if tx.done {
		return ledger.ErrTxDone
	}
	if amount.Sign() < 0 {
		return ledger.ErrInvalidAmount
	}

	tx.allowances[allowanceKey{asset: asset, owner: owner, spender: spender}] = new(big.Int).Set(amount)

	return nil
}

func (tx *memTx) NativeBalanceOf(_ context.Context, account common.Address) (*big.Int, error) {
	if tx.done {
		return nil, ledger.ErrTxDone
	}
	return new(big.Int).Set(tx.nativeOf(account)), nil
}

func (tx *memTx) TokenBalanceOf(_ context.Context, asset, account common.Address) (*big.Int, error) {
	if tx.done {
		return nil, ledger.ErrTxDone
	}
	return new(big.Int).Set(tx.tokenOf(tokenKey{asset: asset, account: account})), nil
}

func (tx *memTx) AllowanceOf(_ context.Context, asset, owner, spender common.Address) (*big.Int, error) {
	if tx.done {
		return nil, ledger.ErrTxDone
	}
	return new(big.Int).Set(tx.allowanceOf(allowanceKey{asset: asset, owner: owner, spender: spender})), nil
}

func (tx *memTx) Commit() error {
	if tx.done {
		return ledger.ErrTxDone
	}

	for account, balance := range tx.native {
		tx.ledger.native[account] = balance
	}
	for key, balance := range tx.tokens {
		tx.ledger.tokens[key] = balance
	}
	for key, allowance := range tx.allowances {
		tx.ledger.allowances[key] = allowance
	}

	tx.done = true
	tx.ledger.mu.Unlock()

	return nil
}

func (tx *memTx) Rollback() error {
	if tx.done {
		return nil
	}

	tx.done = true
	tx.ledger.mu.Unlock()

	return nil
}
