package errors

import (
	"fmt"
	"testing"
)

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		kind      *Error
		err       error
		wantMatch bool
	}{
		"instance of the same root error": {
			kind:      ErrNotFound,
			err:       ErrNotFound,
			wantMatch: true,
		},
		"wrapped root error": {
			kind:      ErrNotFound,
			err:       Wrap(ErrNotFound, "gone"),
			wantMatch: true,
		},
		"double wrapped root error": {
			kind:      ErrNotFound,
			err:       Wrap(Wrap(ErrNotFound, "gone"), "cannot load"),
			wantMatch: true,
		},
		"different root error": {
			kind:      ErrNotFound,
			err:       ErrUnauthorized,
			wantMatch: false,
		},
		"wrapped different root error": {
			kind:      ErrNotFound,
			err:       Wrap(ErrUnauthorized, "nope"),
			wantMatch: false,
		},
		"stdlib error": {
			kind:      ErrNotFound,
			err:       fmt.Errorf("not found"),
			wantMatch: false,
		},
		"nil kind matches nil error": {
			kind:      nil,
			err:       nil,
			wantMatch: true,
		},
		"non-nil error never matches nil kind": {
			kind:      ErrNotFound,
			err:       nil,
			wantMatch: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.wantMatch {
				t.Fatalf("want match=%v, got %v", tc.wantMatch, got)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "whatever"); err != nil {
		t.Fatalf("wrapping nil must return nil, got %+v", err)
	}
}

func TestWrapPreservesMessage(t *testing.T) {
	err := Wrap(ErrInvalidAmount, "negative deposit")
	const want = "negative deposit: invalid amount"
	if got := err.Error(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestRegisterPanicsOnReuse(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate error code")
		}
	}()
	Register(2, "duplicate of unauthorized")
}

func TestWrapAttachesStackTraceOnce(t *testing.T) {
	err := Wrap(ErrNotFound, "first")
	st := stackTrace(err)
	if st == nil {
		t.Fatal("first wrap must attach a stack trace")
	}
	// Second wrap must reuse the existing trace.
	err2 := Wrap(err, "second")
	if got := stackTrace(err2); got == nil {
		t.Fatal("stack trace lost on rewrap")
	}
}
