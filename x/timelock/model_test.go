package timelock

import (
	"testing"

	"github.com/craig-iam-smith/graphene"
	"github.com/craig-iam-smith/graphene/coin"
	"github.com/craig-iam-smith/graphene/errors"
	"github.com/craig-iam-smith/graphene/store"
	"github.com/craig-iam-smith/graphene/weavetest"
	"github.com/craig-iam-smith/graphene/weavetest/assert"
)

func TestBalanceValidate(t *testing.T) {
	owner := weavetest.NewCondition().Address()

	cases := map[string]struct {
		balance *Balance
		wantErr *errors.Error
	}{
		"valid balance": {
			balance: &Balance{
				Owner:               owner,
				Amount:              coin.NewCoinp(50, 0, "IOV"),
				ReviewPeriodSeconds: 3600,
			},
		},
		"zero amount is allowed": {
			balance: &Balance{
				Owner:               owner,
				Amount:              coin.NewCoinp(0, 0, "IOV"),
				ReviewPeriodSeconds: 3600,
			},
		},
		"missing owner": {
			balance: &Balance{
				Amount:              coin.NewCoinp(50, 0, "IOV"),
				ReviewPeriodSeconds: 3600,
			},
			wantErr: errors.ErrInvalidInput,
		},
		"missing amount": {
			balance: &Balance{
				Owner:               owner,
				ReviewPeriodSeconds: 3600,
			},
			wantErr: errors.ErrInvalidAmount,
		},
		"amount without a currency": {
			balance: &Balance{
				Owner:               owner,
				Amount:              coin.NewCoinp(50, 0, ""),
				ReviewPeriodSeconds: 3600,
			},
			wantErr: errors.ErrCurrency,
		},
		"negative amount": {
			balance: &Balance{
				Owner:               owner,
				Amount:              coin.NewCoinp(-1, 0, "IOV"),
				ReviewPeriodSeconds: 3600,
			},
			wantErr: errors.ErrInvalidAmount,
		},
		"missing review period": {
			balance: &Balance{
				Owner:  owner,
				Amount: coin.NewCoinp(50, 0, "IOV"),
			},
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.balance.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestWithdrawalValidate(t *testing.T) {
	recipient := weavetest.NewCondition().Address()

	cases := map[string]struct {
		withdrawal *Withdrawal
		wantErr    *errors.Error
	}{
		"valid withdrawal": {
			withdrawal: &Withdrawal{
				BalanceID:  weavetest.SequenceID(1),
				Amount:     coin.NewCoinp(10, 0, ""),
				Recipient:  recipient,
				FinalizeAt: 12345,
			},
		},
		"invalid balance id": {
			withdrawal: &Withdrawal{
				BalanceID:  []byte("bad"),
				Amount:     coin.NewCoinp(10, 0, ""),
				Recipient:  recipient,
				FinalizeAt: 12345,
			},
			wantErr: errors.ErrInvalidInput,
		},
		"amount must not declare a currency": {
			withdrawal: &Withdrawal{
				BalanceID:  weavetest.SequenceID(1),
				Amount:     coin.NewCoinp(10, 0, "IOV"),
				Recipient:  recipient,
				FinalizeAt: 12345,
			},
			wantErr: errors.ErrInvalidState,
		},
		"zero amount": {
			withdrawal: &Withdrawal{
				BalanceID:  weavetest.SequenceID(1),
				Amount:     coin.NewCoinp(0, 0, ""),
				Recipient:  recipient,
				FinalizeAt: 12345,
			},
			wantErr: errors.ErrInvalidAmount,
		},
		"missing finalization time": {
			withdrawal: &Withdrawal{
				BalanceID: weavetest.SequenceID(1),
				Amount:    coin.NewCoinp(10, 0, ""),
				Recipient: recipient,
			},
			wantErr: errors.ErrInvalidState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.withdrawal.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestBalanceBucketCreateAssignsSequentialIDs(t *testing.T) {
	db := store.MemStore()
	bucket := NewBalanceBucket()
	owner := weavetest.NewCondition().Address()

	for i := int64(1); i < 4; i++ {
		obj, err := bucket.Create(db, &Balance{
			Owner:               owner,
			Amount:              coin.NewCoinp(i, 0, "IOV"),
			ReviewPeriodSeconds: 3600,
		})
		assert.Nil(t, err)
		assert.Equal(t, weavetest.SequenceID(uint64(i)), obj.Key())
	}
}

func TestBalanceBucketByOwner(t *testing.T) {
	db := store.MemStore()
	bucket := NewBalanceBucket()
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()

	for _, owner := range []graphene.Address{alice, bob, alice} {
		_, err := bucket.Create(db, &Balance{
			Owner:               owner,
			Amount:              coin.NewCoinp(1, 0, "IOV"),
			ReviewPeriodSeconds: 3600,
		})
		assert.Nil(t, err)
	}

	objs, err := bucket.ByOwner(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(objs))

	objs, err = bucket.ByOwner(db, bob)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(objs))
}

func TestBalanceBucketGetMissing(t *testing.T) {
	db := store.MemStore()
	bucket := NewBalanceBucket()

	if _, err := bucket.GetBalance(db, weavetest.SequenceID(123)); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestWithdrawalBucketDue(t *testing.T) {
	db := store.MemStore()
	balances := NewBalanceBucket()
	withdrawals := NewWithdrawalBucket()
	recipient := weavetest.NewCondition().Address()

	bobj, err := balances.Create(db, &Balance{
		Owner:               weavetest.NewCondition().Address(),
		Amount:              coin.NewCoinp(100, 0, "IOV"),
		ReviewPeriodSeconds: 3600,
	})
	assert.Nil(t, err)

	for _, at := range []graphene.UnixTime{300, 100, 200} {
		_, err := withdrawals.Create(db, &Withdrawal{
			BalanceID:  bobj.Key(),
			Amount:     coin.NewCoinp(1, 0, ""),
			Recipient:  recipient,
			FinalizeAt: at,
		})
		assert.Nil(t, err)
	}

	// The bound is inclusive and results come ordered by finalization
	// time.
	objs, err := withdrawals.Due(db, 200)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(objs))
	first, err := asWithdrawal(objs[0])
	assert.Nil(t, err)
	assert.Equal(t, graphene.UnixTime(100), first.FinalizeAt)
	second, err := asWithdrawal(objs[1])
	assert.Nil(t, err)
	assert.Equal(t, graphene.UnixTime(200), second.FinalizeAt)

	objs, err = withdrawals.Due(db, 99)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(objs))

	objs, err = withdrawals.Due(db, 1000)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(objs))
}

func TestWithdrawalBucketByBalance(t *testing.T) {
	db := store.MemStore()
	withdrawals := NewWithdrawalBucket()
	recipient := weavetest.NewCondition().Address()

	for _, balanceID := range [][]byte{
		weavetest.SequenceID(1),
		weavetest.SequenceID(2),
		weavetest.SequenceID(1),
	} {
		_, err := withdrawals.Create(db, &Withdrawal{
			BalanceID:  balanceID,
			Amount:     coin.NewCoinp(1, 0, ""),
			Recipient:  recipient,
			FinalizeAt: 500,
		})
		assert.Nil(t, err)
	}

	objs, err := withdrawals.ByBalance(db, weavetest.SequenceID(1))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(objs))
}

func TestBalanceAddressIsDeterministic(t *testing.T) {
	a := BalanceAddress(weavetest.SequenceID(1))
	b := BalanceAddress(weavetest.SequenceID(1))
	other := BalanceAddress(weavetest.SequenceID(2))

	assert.Nil(t, a.Validate())
	if !a.Equals(b) {
		t.Fatal("address must be deterministic")
	}
	if a.Equals(other) {
		t.Fatal("addresses of different balances must differ")
	}
}
