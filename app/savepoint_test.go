package app

import (
	"context"
	"testing"

	"github.com/craig-iam-smith/graphene"
	"github.com/craig-iam-smith/graphene/errors"
	"github.com/craig-iam-smith/graphene/store"
	"github.com/craig-iam-smith/graphene/weavetest"
	"github.com/craig-iam-smith/graphene/weavetest/assert"
)

// writingHandler writes the given key value pair and then returns err. It
// simulates a handler that failed after mutating the store.
type writingHandler struct {
	key   []byte
	value []byte
	err   error
}

var _ graphene.Handler = writingHandler{}

func (h writingHandler) Check(ctx graphene.Context, db graphene.KVStore, tx graphene.Tx) (*graphene.CheckResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &graphene.CheckResult{}, h.err
}

func (h writingHandler) Deliver(ctx graphene.Context, db graphene.KVStore, tx graphene.Tx) (*graphene.DeliverResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &graphene.DeliverResult{}, h.err
}

func TestSavepoint(t *testing.T) {
	cases := map[string]struct {
		save        Savepoint
		handlerErr  error
		wantErr     *errors.Error
		wantWritten bool
	}{
		"success commits the write": {
			save:        NewSavepoint().OnCheck().OnDeliver(),
			wantWritten: true,
		},
		"failure discards the write": {
			save:       NewSavepoint().OnCheck().OnDeliver(),
			handlerErr: errors.ErrInsufficientAmount,
			wantErr:    errors.ErrInsufficientAmount,
		},
		"inactive savepoint leaks the write": {
			save:        NewSavepoint(),
			handlerErr:  errors.ErrInsufficientAmount,
			wantErr:     errors.ErrInsufficientAmount,
			wantWritten: true,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			key := []byte("stamp")
			h := writingHandler{key: key, value: []byte("ok"), err: tc.handlerErr}
			stack := ChainDecorators(tc.save).WithHandler(h)
			ctx := context.Background()
			tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/good"}}

			for name, run := range map[string]func(graphene.KVStore) error{
				"check": func(db graphene.KVStore) error {
					_, err := stack.Check(ctx, db, tx)
					return err
				},
				"deliver": func(db graphene.KVStore) error {
					_, err := stack.Deliver(ctx, db, tx)
					return err
				},
			} {
				db := store.MemStore()
				if err := run(db); !tc.wantErr.Is(err) {
					t.Fatalf("%s: unexpected error: %+v", name, err)
				}
				has, err := db.Has(key)
				assert.Nil(t, err)
				if has != tc.wantWritten {
					t.Fatalf("%s: written %v, want %v", name, has, tc.wantWritten)
				}
			}
		})
	}
}

func TestSavepointPassesThroughNonCacheableStore(t *testing.T) {
	h := &countingHandler{}
	stack := ChainDecorators(NewSavepoint().OnDeliver()).WithHandler(h)

	// A plain KVStore cannot be cache wrapped, the savepoint must still
	// call through.
	db := flatStore{store.MemStore()}
	ctx := context.Background()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/good"}}

	_, err := stack.Deliver(ctx, db, tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, h.deliver)
}

// flatStore hides the CacheWrap capability of the wrapped store.
type flatStore struct {
	graphene.KVStore
}
