package cash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craig-iam-smith/graphene/coin"
	"github.com/craig-iam-smith/graphene/errors"
	"github.com/craig-iam-smith/graphene/store"
	"github.com/craig-iam-smith/graphene/weavetest"
)

func TestIssueCoins(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())

	addr := weavetest.NewCondition().Address()

	require.NoError(t, ctrl.IssueCoins(db, addr, coin.NewCoin(100, 0, "IOV")))

	cs, err := ctrl.Balance(db, addr)
	require.NoError(t, err)
	assert.True(t, cs.Contains(coin.NewCoin(100, 0, "IOV")))

	// Negative issue takes the funds away.
	require.NoError(t, ctrl.IssueCoins(db, addr, coin.NewCoin(-40, 0, "IOV")))
	cs, err = ctrl.Balance(db, addr)
	require.NoError(t, err)
	assert.True(t, cs.Contains(coin.NewCoin(60, 0, "IOV")))
	assert.False(t, cs.Contains(coin.NewCoin(61, 0, "IOV")))
}

func TestMoveCoins(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())

	src := weavetest.NewCondition().Address()
	dest := weavetest.NewCondition().Address()

	require.NoError(t, ctrl.IssueCoins(db, src, coin.NewCoin(50, 0, "IOV")))
	require.NoError(t, ctrl.MoveCoins(db, src, dest, coin.NewCoin(20, 0, "IOV")))

	cs, err := ctrl.Balance(db, src)
	require.NoError(t, err)
	assert.True(t, cs.Contains(coin.NewCoin(30, 0, "IOV")))

	cs, err = ctrl.Balance(db, dest)
	require.NoError(t, err)
	assert.True(t, cs.Contains(coin.NewCoin(20, 0, "IOV")))
}

func TestMoveCoinsInsufficient(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())

	src := weavetest.NewCondition().Address()
	dest := weavetest.NewCondition().Address()

	require.NoError(t, ctrl.IssueCoins(db, src, coin.NewCoin(5, 0, "IOV")))

	err := ctrl.MoveCoins(db, src, dest, coin.NewCoin(10, 0, "IOV"))
	assert.True(t, errors.ErrInsufficientAmount.Is(err))

	// A failed move must not change any balance.
	cs, err2 := ctrl.Balance(db, src)
	require.NoError(t, err2)
	assert.True(t, cs.Contains(coin.NewCoin(5, 0, "IOV")))
}

func TestMoveCoinsFromMissingAccount(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())

	src := weavetest.NewCondition().Address()
	dest := weavetest.NewCondition().Address()

	err := ctrl.MoveCoins(db, src, dest, coin.NewCoin(10, 0, "IOV"))
	assert.True(t, errors.ErrEmpty.Is(err))
}

func TestMoveCoinsRequiresPositiveAmount(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())

	src := weavetest.NewCondition().Address()
	dest := weavetest.NewCondition().Address()

	require.NoError(t, ctrl.IssueCoins(db, src, coin.NewCoin(5, 0, "IOV")))

	err := ctrl.MoveCoins(db, src, dest, coin.NewCoin(0, 0, "IOV"))
	assert.True(t, errors.ErrInvalidAmount.Is(err))

	err = ctrl.MoveCoins(db, src, dest, coin.NewCoin(-1, 0, "IOV"))
	assert.True(t, errors.ErrInvalidAmount.Is(err))
}

func TestWalletRoundTrip(t *testing.T) {
	db := store.MemStore()
	bucket := NewBucket()

	addr := weavetest.NewCondition().Address()
	w, err := WalletWith(addr, coin.NewCoinp(7, 0, "BTC"), coin.NewCoinp(1, 0, "IOV"))
	require.NoError(t, err)
	require.NoError(t, bucket.Save(db, w))

	loaded, err := bucket.Get(db, addr)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.Coins().Contains(coin.NewCoin(7, 0, "BTC")))
	assert.True(t, loaded.Coins().Contains(coin.NewCoin(1, 0, "IOV")))
}
