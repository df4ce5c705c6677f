package coin

import (
	"testing"

	"github.com/craig-iam-smith/graphene/errors"
	"github.com/craig-iam-smith/graphene/weavetest/assert"
)

func TestCompareCoin(t *testing.T) {
	cases := map[string]struct {
		a       Coin
		b       Coin
		wantRes int
	}{
		"a greater than b": {
			a:       NewCoin(20, 1234, "ABC"),
			b:       NewCoin(19, 999999999, "ABC"),
			wantRes: 1,
		},
		"a smaller than b": {
			a:       NewCoin(0, -2, "FOO"),
			b:       NewCoin(0, 1, "FOO"),
			wantRes: -1,
		},
		"a greater than b and both negative": {
			a:       NewCoin(-4, -2456, "BAR"),
			b:       NewCoin(-4, -4567, "BAR"),
			wantRes: 1,
		},
		"zero value coins": {
			a:       Coin{},
			b:       Coin{},
			wantRes: 0,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.a.Compare(tc.b), tc.wantRes)
		})
	}
}

func TestCoinAdd(t *testing.T) {
	cases := map[string]struct {
		a       Coin
		b       Coin
		wantErr *errors.Error
		wantRes Coin
	}{
		"plain addition": {
			a:       NewCoin(1, 2, "IOV"),
			b:       NewCoin(3, 4, "IOV"),
			wantRes: NewCoin(4, 6, "IOV"),
		},
		"fractional carry": {
			a:       NewCoin(1, 999999999, "IOV"),
			b:       NewCoin(0, 1, "IOV"),
			wantRes: NewCoin(2, 0, "IOV"),
		},
		"zero coin with no ticker is neutral": {
			a:       NewCoin(0, 0, ""),
			b:       NewCoin(5, 0, "IOV"),
			wantRes: NewCoin(5, 0, "IOV"),
		},
		"currency mismatch": {
			a:       NewCoin(1, 0, "IOV"),
			b:       NewCoin(1, 0, "BTC"),
			wantErr: errors.ErrCurrency,
		},
		"overflow": {
			a:       NewCoin(MaxInt, 0, "IOV"),
			b:       NewCoin(1, 0, "IOV"),
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			res, err := tc.a.Add(tc.b)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil && !res.Equals(tc.wantRes) {
				t.Fatalf("want %v, got %v", tc.wantRes, res)
			}
		})
	}
}

func TestCoinSubtract(t *testing.T) {
	a := NewCoin(5, 0, "IOV")
	b := NewCoin(2, 500000000, "IOV")

	res, err := a.Subtract(b)
	assert.Nil(t, err)
	if !res.Equals(NewCoin(2, 500000000, "IOV")) {
		t.Fatalf("unexpected result: %v", res)
	}

	// Subtracting more than held leaves a negative value.
	neg, err := b.Subtract(a)
	assert.Nil(t, err)
	if neg.IsNonNegative() {
		t.Fatalf("expected negative result, got %v", neg)
	}
}

func TestCoinNegative(t *testing.T) {
	a := NewCoin(456, 985, "ABC")

	n := a.Negative()

	assert.Equal(t, a.Ticker, n.Ticker)
	assert.Equal(t, a.Whole, -n.Whole)
	assert.Equal(t, a.Fractional, -n.Fractional)

	if nn := a.Negative().Negative(); !a.Equals(nn) {
		t.Fatal("double negation malformed the coin")
	}
}

func TestCoinIsGTE(t *testing.T) {
	cases := map[string]struct {
		a    Coin
		b    Coin
		want bool
	}{
		"greater whole": {
			a:    NewCoin(2, 0, "IOV"),
			b:    NewCoin(1, 999999999, "IOV"),
			want: true,
		},
		"equal": {
			a:    NewCoin(1, 2, "IOV"),
			b:    NewCoin(1, 2, "IOV"),
			want: true,
		},
		"smaller fractional": {
			a:    NewCoin(1, 1, "IOV"),
			b:    NewCoin(1, 2, "IOV"),
			want: false,
		},
		"different currency": {
			a:    NewCoin(100, 0, "IOV"),
			b:    NewCoin(1, 0, "BTC"),
			want: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.a.IsGTE(tc.b), tc.want)
		})
	}
}

func TestValidCoin(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		wantErr *errors.Error
	}{
		"valid coin": {
			coin: NewCoin(42, 0, "IOV"),
		},
		"valid negative coin": {
			coin: NewCoin(-5, -2, "IOV"),
		},
		"missing ticker": {
			coin:    NewCoin(1, 0, ""),
			wantErr: errors.ErrCurrency,
		},
		"lower case ticker": {
			coin:    NewCoin(1, 0, "iov"),
			wantErr: errors.ErrCurrency,
		},
		"too long ticker": {
			coin:    NewCoin(1, 0, "IOVIO"),
			wantErr: errors.ErrCurrency,
		},
		"whole out of range": {
			coin:    NewCoin(MaxInt+1, 0, "IOV"),
			wantErr: errors.ErrOverflow,
		},
		"fractional out of range": {
			coin:    NewCoin(0, FracUnit, "IOV"),
			wantErr: errors.ErrOverflow,
		},
		"mismatched sign": {
			coin:    NewCoin(1, -1, "IOV"),
			wantErr: errors.ErrInvalidState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.coin.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestParseHumanFormat(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    Coin
		wantErr bool
	}{
		"whole only": {
			raw:  "42 IOV",
			want: NewCoin(42, 0, "IOV"),
		},
		"with fractional": {
			raw:  "1.25 IOV",
			want: NewCoin(1, 250000000, "IOV"),
		},
		"negative": {
			raw:  "-3 BTC",
			want: NewCoin(-3, 0, "BTC"),
		},
		"no ticker": {
			raw:     "42",
			wantErr: true,
		},
		"garbage": {
			raw:     "many coins",
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseHumanFormat(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			assert.Nil(t, err)
			if !got.Equals(tc.want) {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestCoinString(t *testing.T) {
	cases := map[string]struct {
		coin Coin
		want string
	}{
		"whole only": {
			coin: NewCoin(4, 0, "IOV"),
			want: "4 IOV",
		},
		"with fractional": {
			coin: NewCoin(1, 250000000, "IOV"),
			want: "1.25 IOV",
		},
		"no ticker": {
			coin: NewCoin(7, 0, ""),
			want: "7",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.coin.String(), tc.want)
		})
	}
}
