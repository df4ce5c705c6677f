package graphene

import (
	"encoding/json"
	"testing"

	"github.com/craig-iam-smith/graphene/errors"
)

func TestConditionParse(t *testing.T) {
	cases := map[string]struct {
		condition Condition
		wantErr   *errors.Error
		wantExt   string
		wantTyp   string
		wantData  []byte
	}{
		"valid condition": {
			condition: NewCondition("timelock", "seq", []byte{0, 0, 0, 0, 0, 0, 0, 1}),
			wantExt:   "timelock",
			wantTyp:   "seq",
			wantData:  []byte{0, 0, 0, 0, 0, 0, 0, 1},
		},
		"data may contain any bytes": {
			condition: NewCondition("sigs", "ed25519", []byte{'/', '\n', 0x20}),
			wantExt:   "sigs",
			wantTyp:   "ed25519",
			wantData:  []byte{'/', '\n', 0x20},
		},
		"missing data": {
			condition: Condition("timelock/seq/"),
			wantErr:   errors.ErrInvalidInput,
		},
		"extension too short": {
			condition: NewCondition("ab", "seq", []byte{1}),
			wantErr:   errors.ErrInvalidInput,
		},
		"not a condition": {
			condition: Condition("foobar"),
			wantErr:   errors.ErrInvalidInput,
		},
		"nil condition": {
			condition: nil,
			wantErr:   errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ext, typ, data, err := tc.condition.Parse()
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err != nil {
				return
			}
			if ext != tc.wantExt || typ != tc.wantTyp {
				t.Fatalf("want %s/%s, got %s/%s", tc.wantExt, tc.wantTyp, ext, typ)
			}
			if string(data) != string(tc.wantData) {
				t.Fatalf("unexpected data: %X", data)
			}
		})
	}
}

func TestConditionAddress(t *testing.T) {
	a := NewCondition("timelock", "seq", []byte{0, 0, 0, 0, 0, 0, 0, 1})
	b := NewCondition("timelock", "seq", []byte{0, 0, 0, 0, 0, 0, 0, 2})

	addr := a.Address()
	if err := addr.Validate(); err != nil {
		t.Fatalf("invalid address: %+v", err)
	}
	if len(addr) != AddressLength {
		t.Fatalf("unexpected address length: %d", len(addr))
	}
	if !addr.Equals(a.Address()) {
		t.Fatal("address must be deterministic")
	}
	if addr.Equals(b.Address()) {
		t.Fatal("different conditions must produce different addresses")
	}
}

func TestAddressValidate(t *testing.T) {
	cases := map[string]struct {
		addr    Address
		wantErr *errors.Error
	}{
		"valid address": {
			addr: make(Address, AddressLength),
		},
		"nil address": {
			addr:    nil,
			wantErr: errors.ErrInvalidInput,
		},
		"too short": {
			addr:    make(Address, AddressLength-1),
			wantErr: errors.ErrInvalidInput,
		},
		"too long": {
			addr:    make(Address, AddressLength+1),
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.addr.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestConditionJSONRoundTrip(t *testing.T) {
	cond := NewCondition("timelock", "seq", []byte{0xca, 0xfe})

	raw, err := json.Marshal(cond)
	if err != nil {
		t.Fatalf("cannot marshal: %+v", err)
	}
	var got Condition
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("cannot unmarshal: %+v", err)
	}
	if !cond.Equals(got) {
		t.Fatalf("want %s, got %s", cond, got)
	}
}

func TestAddressJSONUnmarshalEmpty(t *testing.T) {
	var addr Address
	if err := json.Unmarshal([]byte(`""`), &addr); err != nil {
		t.Fatalf("cannot unmarshal: %+v", err)
	}
	if addr != nil {
		t.Fatalf("want nil address, got %X", addr)
	}
}
