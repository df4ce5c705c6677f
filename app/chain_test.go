package app

import (
	"context"
	"testing"

	"github.com/craig-iam-smith/graphene/errors"
	"github.com/craig-iam-smith/graphene/store"
	"github.com/craig-iam-smith/graphene/weavetest"
	"github.com/craig-iam-smith/graphene/weavetest/assert"
)

func TestChainWithLoggingPassesThrough(t *testing.T) {
	h := &countingHandler{}
	stack := ChainDecorators(NewLogging()).WithHandler(h)

	db := store.MemStore()
	ctx := context.Background()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/good"}}

	_, err := stack.Check(ctx, db, tx)
	assert.Nil(t, err)
	_, err = stack.Deliver(ctx, db, tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, h.check)
	assert.Equal(t, 1, h.deliver)
}

func TestChainPropagatesErrors(t *testing.T) {
	h := &countingHandler{err: errors.Wrap(errors.ErrInvalidState, "boom")}
	stack := ChainDecorators(NewLogging()).WithHandler(h)

	db := store.MemStore()
	ctx := context.Background()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/good"}}

	if _, err := stack.Deliver(ctx, db, tx); !errors.ErrInvalidState.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestChainSkipsNilDecorators(t *testing.T) {
	h := &countingHandler{}
	stack := ChainDecorators(nil, NewLogging(), nil).WithHandler(h)

	db := store.MemStore()
	ctx := context.Background()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/good"}}

	_, err := stack.Deliver(ctx, db, tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, h.deliver)
}
