package memledger_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/chapool/go-disperse/internal/ledger"
	"github/chapool/go-disperse/internal/ledger/memledger"
)

var (
	asset   = common.HexToAddress("0x7070707070707070707070707070707070707070")
	alice   = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob     = common.HexToAddress("0x2222222222222222222222222222222222222222")
	spender = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

func TestRollbackDiscardsStagedTransfers(t *testing.T) {
	l := memledger.New()
	l.SetNativeBalance(alice, big.NewInt(500))

	tx, err := l.Begin(t.Context())
	require.NoError(t, err)

	require.NoError(t, tx.TransferNative(t.Context(), alice, bob, big.NewInt(200)))

	// the transaction sees its own staged state
	staged, err := tx.NativeBalanceOf(t.Context(), bob)
	require.NoError(t, err)
	assert.Equal(t, int64(200), staged.Int64())

	require.NoError(t, tx.Rollback())

	balance, err := l.NativeBalanceOf(context.Background(), bob)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance.Int64())

	balance, err = l.NativeBalanceOf(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, int64(500), balance.Int64())
}

func TestCommitPublishesAllStagedTransfers(t *testing.T) {
	l := memledger.New()
	l.SetNativeBalance(alice, big.NewInt(500))

	tx, err := l.Begin(t.Context())
	require.NoError(t, err)

	require.NoError(t, tx.TransferNative(t.Context(), alice, bob, big.NewInt(200)))
	require.NoError(t, tx.TransferNative(t.Context(), alice, bob, big.NewInt(100)))
	require.NoError(t, tx.Commit())

	balance, err := l.NativeBalanceOf(context.Background(), bob)
	require.NoError(t, err)
	assert.Equal(t, int64(300), balance.Int64())

	// double commit is refused
	require.ErrorIs(t, tx.Commit(), ledger.ErrTxDone)
	// rollback after commit is a no-op
	require.NoError(t, tx.Rollback())
}

func TestTransferTokenConsumesAllowanceOnlyForThirdParty(t *testing.T) {
	l := memledger.New()
	l.Mint(asset, alice, big.NewInt(1_000))

	tx, err := l.Begin(t.Context())
	require.NoError(t, err)
	require.NoError(t, tx.Approve(t.Context(), asset, alice, spender, big.NewInt(300)))

	// spender moving alice's balance consumes allowance
	require.NoError(t, tx.TransferToken(t.Context(), asset, spender, alice, spender, big.NewInt(300)))

	allowance, err := tx.AllowanceOf(t.Context(), asset, alice, spender)
	require.NoError(t, err)
	assert.Equal(t, int64(0), allowance.Int64())

	// spender moving its own balance does not touch any allowance
	require.NoError(t, tx.TransferToken(t.Context(), asset, spender, spender, bob, big.NewInt(300)))
	require.NoError(t, tx.Commit())

	balance, err := l.TokenBalanceOf(context.Background(), asset, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(300), balance.Int64())
}

func TestTransferFailuresLeaveCommittedStateUntouched(t *testing.T) {
	l := memledger.New()
	l.SetNativeBalance(alice, big.NewInt(100))
	l.Mint(asset, alice, big.NewInt(100))

	tx, err := l.Begin(t.Context())
	require.NoError(t, err)

	require.ErrorIs(t, tx.TransferNative(t.Context(), alice, bob, big.NewInt(200)), ledger.ErrInsufficientBalance)
	require.ErrorIs(t, tx.TransferToken(t.Context(), asset, spender, alice, bob, big.NewInt(50)), ledger.ErrInsufficientAllowance)
	require.NoError(t, tx.Rollback())

	balance, err := l.NativeBalanceOf(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance.Int64())
}

func TestRejectingAccountRefusesCredits(t *testing.T) {
	l := memledger.New()
	l.SetNativeBalance(alice, big.NewInt(100))
	l.Mint(asset, alice, big.NewInt(100))
	l.SetRejecting(bob, true)

	tx, err := l.Begin(t.Context())
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	require.ErrorIs(t, tx.TransferNative(t.Context(), alice, bob, big.NewInt(10)), ledger.ErrTransferRejected)
	require.ErrorIs(t, tx.TransferToken(t.Context(), asset, alice, alice, bob, big.NewInt(10)), ledger.ErrTransferRejected)
}
