// Package pgledger provides a Postgres-backed ledger.Ledger. The ledger.Tx
// contract maps directly onto a SQL transaction, which supplies the
// all-or-nothing guarantee the disbursement operations rely on.
package pgledger

import (
	"context"
	"database/sql"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github/chapool/go-disperse/internal/ledger"

	// Import postgres driver for database/sql package
	_ "github.com/lib/pq"
)

// Ledger persists balances and allowances in Postgres. Amounts are stored as
// NUMERIC(78,0) and travel as decimal strings to preserve full uint256 range.
type Ledger struct {
	db *sql.DB
}

var _ ledger.Ledger = (*Ledger)(nil)

// New wraps an already opened database handle.
func New(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// DB exposes the underlying handle for migration and seeding commands.
func (l *Ledger) DB() *sql.DB {
	return l.db
}

func (l *Ledger) Begin(ctx context.Context) (ledger.Tx, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin ledger transaction")
	}

	return &pgTx{tx: tx}, nil
}

func (l *Ledger) NativeBalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	return queryAmount(ctx, l.db, `
		SELECT COALESCE(SUM(balance), 0)::text
		FROM native_balances
		WHERE address = $1
	`, hex(account))
}

func (l *Ledger) TokenBalanceOf(ctx context.Context, asset, account common.Address) (*big.Int, error) {
	return queryAmount(ctx, l.db, `
		SELECT COALESCE(SUM(balance), 0)::text
		FROM token_balances
		WHERE asset = $1 AND address = $2
	`, hex(asset), hex(account))
}

func (l *Ledger) AllowanceOf(ctx context.Context, asset, owner, spender common.Address) (*big.Int, error) {
	return queryAmount(ctx, l.db, `
		SELECT COALESCE(SUM(amount), 0)::text
		FROM token_allowances
		WHERE asset = $1 AND owner_address = $2 AND spender_address = $3
	`, hex(asset), hex(owner), hex(spender))
}

func (l *Ledger) Ping(ctx context.Context) error {
	return l.db.PingContext(ctx)
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

// SeedNativeBalance replaces the committed native balance of account.
// Used by the db seed command only.
func (l *Ledger) SeedNativeBalance(ctx context.Context, account common.Address, amount *big.Int) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO native_balances (address, balance)
		VALUES ($1, $2::numeric)
		ON CONFLICT (address) DO UPDATE SET balance = EXCLUDED.balance
	`, hex(account), amount.String())

	return errors.Wrap(err, "failed to seed native balance")
}

// MintToken credits token units of asset to account.
// Used by the db seed command only.
func (l *Ledger) MintToken(ctx context.Context, asset, account common.Address, amount *big.Int) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO token_balances (asset, address, balance)
		VALUES ($1, $2, $3::numeric)
		ON CONFLICT (asset, address) DO UPDATE SET balance = token_balances.balance + EXCLUDED.balance
	`, hex(asset), hex(account), amount.String())

	return errors.Wrap(err, "failed to mint token balance")
}

type pgTx struct {
	tx *sql.Tx
}

func (t *pgTx) TransferNative(ctx context.Context, from, to common.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ledger.ErrInvalidAmount
	}

	res, err := t.tx.ExecContext(ctx, `
		UPDATE native_balances
		SET balance = balance - $2::numeric
		WHERE address = $1 AND balance >= $2::numeric
	`, hex(from), amount.String())
	if err != nil {
		return errors.Wrap(err, "failed to debit native balance")
	}
	if err := requireRow(res, ledger.ErrInsufficientBalance); err != nil {
		return errors.Wrapf(err, "account %s", from.Hex())
	}

	_, err = t.tx.ExecContext(ctx, `
		INSERT INTO native_balances (address, balance)
		VALUES ($1, $2::numeric)
		ON CONFLICT (address) DO UPDATE SET balance = native_balances.balance + EXCLUDED.balance
	`, hex(to), amount.String())

	return errors.Wrap(err, "failed to credit native balance")
}

func (t *pgTx) TransferToken(ctx context.Context, asset, spender, from, to common.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ledger.ErrInvalidAmount
	}

	// The transferFrom rule: moving someone else's balance consumes the
	// allowance they granted the spender.
	if from != spender {
		res, err := t.tx.ExecContext(ctx, `
			UPDATE token_allowances
			SET amount = amount - $4::numeric
			WHERE asset = $1 AND owner_address = $2 AND spender_address = $3 AND amount >= $4::numeric
		`, hex(asset), hex(from), hex(spender), amount.String())
		if err != nil {
			return errors.Wrap(err, "failed to consume allowance")
		}
		if err := requireRow(res, ledger.ErrInsufficientAllowance); err != nil {
			return errors.Wrapf(err, "owner %s spender %s", from.Hex(), spender.Hex())
		}
	}

	res, err := t.tx.ExecContext(ctx, `
		UPDATE token_balances
		SET balance = balance - $3::numeric
		WHERE asset = $1 AND address = $2 AND balance >= $3::numeric
	`, hex(asset), hex(from), amount.String())
	if err != nil {
		return errors.Wrap(err, "failed to debit token balance")
	}
	if err := requireRow(res, ledger.ErrInsufficientBalance); err != nil {
		return errors.Wrapf(err, "account %s", from.Hex())
	}

	_, err = t.tx.ExecContext(ctx, `
		INSERT INTO token_balances (asset, address, balance)
		VALUES ($1, $2, $3::numeric)
		ON CONFLICT (asset, address) DO UPDATE SET balance = token_balances.balance + EXCLUDED.balance
	`, hex(asset), hex(to), amount.String())

	return errors.Wrap(err, "failed to credit token balance")
}

func (t *pgTx) Approve(ctx context.Context, asset, owner, spender common.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ledger.ErrInvalidAmount
	}

	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO token_allowances (asset, owner_address, spender_address, amount)
		VALUES ($1, $2, $3, $4::numeric)
		ON CONFLICT (asset, owner_address, spender_address) DO UPDATE SET amount = EXCLUDED.amount
	`, hex(asset), hex(owner), hex(spender), amount.String())

	return errors.Wrap(err, "failed to set allowance")
}

func (t *pgTx) NativeBalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	return queryAmount(ctx, t.tx, `
		SELECT COALESCE(SUM(balance), 0)::text
		FROM native_balances
		WHERE address = $1
	`, hex(account))
}

func (t *pgTx) TokenBalanceOf(ctx context.Context, asset, account common.Address) (*big.Int, error) {
	return queryAmount(ctx, t.tx, `
		SELECT COALESCE(SUM(balance), 0)::text
		FROM token_balances
		WHERE asset = $1 AND address = $2
	`, hex(asset), hex(account))
}

func (t *pgTx) AllowanceOf(ctx context.Context, asset, owner, spender common.Address) (*big.Int, error) {
	return queryAmount(ctx, t.tx, `
		SELECT COALESCE(SUM(amount), 0)::text
		FROM token_allowances
		WHERE asset = $1 AND owner_address = $2 AND spender_address = $3
	`, hex(asset), hex(owner), hex(spender))
}

func (t *pgTx) Commit() error {
	return errors.Wrap(t.tx.Commit(), "failed to commit ledger transaction")
}

func (t *pgTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return errors.Wrap(err, "failed to rollback ledger transaction")
	}

	return nil
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func queryAmount(ctx context.Context, q rowQuerier, query string, args ...interface{}) (*big.Int, error) {
	var amountStr string
	if err := q.QueryRowContext(ctx, query, args...).Scan(&amountStr); err != nil {
		return nil, errors.Wrap(err, "failed to query amount")
	}

	amount, ok := new(big.Int).SetString(amountStr, 10)
	if !ok {
		return nil, errors.Errorf("failed to parse amount: %s", amountStr)
	}

	return amount, nil
}

func requireRow(res sql.Result, insufficient error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return insufficient
	}

	return nil
}

// hex normalizes addresses to their lower-case hex form for storage, the same
// normalization applied on every lookup.
func hex(a common.Address) string {
	return "0x" + common.Bytes2Hex(a.Bytes())
}
