package coin

import (
	"testing"

	"github.com/craig-iam-smith/graphene/weavetest/assert"
)

func TestCoinsAdd(t *testing.T) {
	cs, err := CombineCoins(
		NewCoin(10, 0, "BTC"),
		NewCoin(5, 0, "IOV"),
	)
	assert.Nil(t, err)
	assert.Equal(t, cs.Count(), 2)

	cs, err = cs.Add(NewCoin(2, 0, "IOV"))
	assert.Nil(t, err)
	if !cs.Contains(NewCoin(7, 0, "IOV")) {
		t.Fatalf("unexpected set: %v", cs)
	}

	// Insert a new currency keeping the order.
	cs, err = cs.Add(NewCoin(1, 0, "ETH"))
	assert.Nil(t, err)
	assert.Nil(t, cs.Validate())
	assert.Equal(t, cs.Count(), 3)
}

func TestCoinsAddZeroRemoves(t *testing.T) {
	cs, err := CombineCoins(NewCoin(3, 0, "IOV"))
	assert.Nil(t, err)

	cs, err = cs.Subtract(NewCoin(3, 0, "IOV"))
	assert.Nil(t, err)
	if !cs.IsEmpty() {
		t.Fatalf("zero valued coin must be removed: %v", cs)
	}
}

func TestCoinsContains(t *testing.T) {
	cs, err := CombineCoins(NewCoin(10, 0, "IOV"))
	assert.Nil(t, err)

	cases := map[string]struct {
		coin Coin
		want bool
	}{
		"exact amount":     {coin: NewCoin(10, 0, "IOV"), want: true},
		"less than held":   {coin: NewCoin(4, 0, "IOV"), want: true},
		"more than held":   {coin: NewCoin(11, 0, "IOV"), want: false},
		"unknown currency": {coin: NewCoin(1, 0, "BTC"), want: false},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, cs.Contains(tc.coin), tc.want)
		})
	}
}

func TestCoinsValidate(t *testing.T) {
	cases := map[string]struct {
		coins   Coins
		wantErr bool
	}{
		"empty set": {
			coins: nil,
		},
		"sorted set": {
			coins: Coins{NewCoinp(1, 0, "BTC"), NewCoinp(2, 0, "IOV")},
		},
		"unsorted set": {
			coins:   Coins{NewCoinp(2, 0, "IOV"), NewCoinp(1, 0, "BTC")},
			wantErr: true,
		},
		"zero coin": {
			coins:   Coins{NewCoinp(0, 0, "IOV")},
			wantErr: true,
		},
		"invalid ticker": {
			coins:   Coins{NewCoinp(1, 0, "what")},
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.coins.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestCoinsCombine(t *testing.T) {
	a, err := CombineCoins(NewCoin(1, 0, "IOV"))
	assert.Nil(t, err)
	b, err := CombineCoins(NewCoin(2, 0, "BTC"), NewCoin(3, 0, "IOV"))
	assert.Nil(t, err)

	sum, err := a.Combine(b)
	assert.Nil(t, err)
	assert.Equal(t, sum.Count(), 2)
	if !sum.Contains(NewCoin(4, 0, "IOV")) || !sum.Contains(NewCoin(2, 0, "BTC")) {
		t.Fatalf("unexpected set: %v", sum)
	}

	// Combine must not modify the original.
	assert.Equal(t, a.Count(), 1)
	if !a.Contains(NewCoin(1, 0, "IOV")) {
		t.Fatalf("source set modified: %v", a)
	}
}
