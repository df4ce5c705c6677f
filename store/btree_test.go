package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craig-iam-smith/graphene/errors"
)

func TestBTreeCacheGetSet(t *testing.T) {
	base := MemStore()

	k, v := []byte("french"), []byte("fry")

	// Empty on start.
	got, err := base.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)
	has, err := base.Has(k)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, base.Set(k, v))
	got, err = base.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	require.NoError(t, base.Delete(k))
	has, err = base.Has(k)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestBTreeCacheWrapWrite(t *testing.T) {
	base := MemStore()
	k, v := []byte("owner"), []byte("alice")

	cache := base.CacheWrap()
	require.NoError(t, cache.Set(k, v))

	// Not visible in the parent until written.
	got, err := base.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, cache.Write())

	got, err = base.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestBTreeCacheWrapDiscard(t *testing.T) {
	base := MemStore()
	k, v := []byte("owner"), []byte("alice")
	require.NoError(t, base.Set(k, v))

	cache := base.CacheWrap()
	require.NoError(t, cache.Delete(k))
	require.NoError(t, cache.Set([]byte("other"), []byte("data")))
	cache.Discard()

	// Parent still holds the original state.
	got, err := base.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)
	has, err := base.Has([]byte("other"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestBTreeCacheShadowsParent(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("a"), []byte("1")))
	require.NoError(t, base.Set([]byte("b"), []byte("2")))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("22")))
	require.NoError(t, cache.Delete([]byte("a")))

	got, err := cache.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("22"), got)
	got, err = cache.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBTreeIterator(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("a"), []byte("1")))
	require.NoError(t, base.Set([]byte("c"), []byte("3")))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))
	require.NoError(t, cache.Set([]byte("c"), []byte("33")))
	require.NoError(t, cache.Delete([]byte("a")))

	iter, err := cache.Iterator(nil, nil)
	require.NoError(t, err)
	defer iter.Release()

	var keys, values []string
	for {
		k, v, err := iter.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		require.NoError(t, err)
		keys = append(keys, string(k))
		values = append(values, string(v))
	}
	assert.Equal(t, []string{"b", "c"}, keys)
	assert.Equal(t, []string{"2", "33"}, values)
}

func TestBTreeReverseIterator(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("a"), []byte("1")))
	require.NoError(t, base.Set([]byte("b"), []byte("2")))
	require.NoError(t, base.Set([]byte("c"), []byte("3")))

	iter, err := base.ReverseIterator(nil, nil)
	require.NoError(t, err)
	defer iter.Release()

	var keys []string
	for {
		k, _, err := iter.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		require.NoError(t, err)
		keys = append(keys, string(k))
	}
	assert.Equal(t, []string{"c", "b", "a"}, keys)
}

func TestBTreeIteratorRange(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("a"), []byte("1")))
	require.NoError(t, base.Set([]byte("b"), []byte("2")))
	require.NoError(t, base.Set([]byte("c"), []byte("3")))
	require.NoError(t, base.Set([]byte("d"), []byte("4")))

	// End is exclusive.
	iter, err := base.Iterator([]byte("b"), []byte("d"))
	require.NoError(t, err)
	defer iter.Release()

	var keys []string
	for {
		k, _, err := iter.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		require.NoError(t, err)
		keys = append(keys, string(k))
	}
	assert.Equal(t, []string{"b", "c"}, keys)
}
