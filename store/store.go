package store

import (
	"github.com/craig-iam-smith/graphene"
)

// Type aliases for the store primitives declared in the root package. The
// store implementations are kept in a separate package to avoid the root
// package depending on btree.
type (
	ReadOnlyKVStore  = graphene.ReadOnlyKVStore
	KVStore          = graphene.KVStore
	Iterator         = graphene.Iterator
	CacheableKVStore = graphene.CacheableKVStore
	KVCacheWrap      = graphene.KVCacheWrap
	Model            = graphene.Model
)

// SetDeleter is a minimal interface for writing to a store.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// Batch groups writes to be executed at once against the underlying store.
type Batch interface {
	SetDeleter
	Write() error
}
