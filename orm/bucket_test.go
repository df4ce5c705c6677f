package orm

import (
	"bytes"
	"testing"

	"github.com/craig-iam-smith/graphene/store"
	"github.com/craig-iam-smith/graphene/weavetest/assert"
)

// refObj creates a test object that stores a MultiRef value.
func refObj(key []byte, refs ...string) Object {
	bzs := make([][]byte, len(refs))
	for i, r := range refs {
		bzs[i] = []byte(r)
	}
	mref, err := NewMultiRef(bzs...)
	if err != nil {
		panic(err)
	}
	return NewSimpleObj(key, mref)
}

func refBucket() Bucket {
	return NewBucket("refs", NewSimpleObj(nil, new(MultiRef)))
}

// firstRef indexes an object by the first stored reference.
func firstRef(obj Object) ([]byte, error) {
	mref, ok := obj.Value().(*MultiRef)
	if !ok || len(mref.Refs) == 0 {
		return nil, nil
	}
	return mref.Refs[0], nil
}

func TestBucketSaveGet(t *testing.T) {
	db := store.MemStore()
	b := refBucket()

	// Missing entity loads as nil.
	obj, err := b.Get(db, []byte("none"))
	assert.Nil(t, err)
	assert.Nil(t, obj)

	want := refObj([]byte("first"), "data")
	assert.Nil(t, b.Save(db, want))

	obj, err = b.Get(db, []byte("first"))
	assert.Nil(t, err)
	if obj == nil {
		t.Fatal("stored object not found")
	}
	assert.Equal(t, []byte("first"), obj.Key())
	mref := obj.Value().(*MultiRef)
	assert.Equal(t, [][]byte{[]byte("data")}, mref.Refs)
}

func TestBucketDelete(t *testing.T) {
	db := store.MemStore()
	b := refBucket()

	assert.Nil(t, b.Save(db, refObj([]byte("gone"), "data")))
	assert.Nil(t, b.Delete(db, []byte("gone")))

	obj, err := b.Get(db, []byte("gone"))
	assert.Nil(t, err)
	assert.Nil(t, obj)
}

func TestBucketRequiresValidName(t *testing.T) {
	assert.Panics(t, func() {
		NewBucket("Bad Name", NewSimpleObj(nil, new(MultiRef)))
	})
}

func TestBucketPrefixesDoNotCollide(t *testing.T) {
	db := store.MemStore()
	a := NewBucket("aaa", NewSimpleObj(nil, new(MultiRef)))
	b := NewBucket("bbb", NewSimpleObj(nil, new(MultiRef)))

	assert.Nil(t, a.Save(db, refObj([]byte("key"), "from a")))
	assert.Nil(t, b.Save(db, refObj([]byte("key"), "from b")))

	obj, err := a.Get(db, []byte("key"))
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("from a")}, obj.Value().(*MultiRef).Refs)
}

func TestBucketIndex(t *testing.T) {
	db := store.MemStore()
	b := refBucket().WithIndex("main", firstRef, false)

	assert.Nil(t, b.Save(db, refObj([]byte("one"), "alice")))
	assert.Nil(t, b.Save(db, refObj([]byte("two"), "alice")))
	assert.Nil(t, b.Save(db, refObj([]byte("three"), "bob")))

	objs, err := b.GetIndexed(db, "main", []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(objs))

	// Changing the indexed value moves the reference.
	assert.Nil(t, b.Save(db, refObj([]byte("two"), "bob")))

	objs, err = b.GetIndexed(db, "main", []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(objs))
	objs, err = b.GetIndexed(db, "main", []byte("bob"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(objs))

	// Deleting removes the index entry as well.
	assert.Nil(t, b.Delete(db, []byte("one")))
	objs, err = b.GetIndexed(db, "main", []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(objs))
}

func TestBucketUniqueIndex(t *testing.T) {
	db := store.MemStore()
	b := refBucket().WithIndex("main", firstRef, true)

	assert.Nil(t, b.Save(db, refObj([]byte("one"), "alice")))

	if err := b.Save(db, refObj([]byte("two"), "alice")); err == nil {
		t.Fatal("duplicate value on a unique index must fail")
	}
}

func TestBucketIndexRange(t *testing.T) {
	db := store.MemStore()
	b := refBucket().WithIndex("main", firstRef, false)

	assert.Nil(t, b.Save(db, refObj([]byte("one"), "a")))
	assert.Nil(t, b.Save(db, refObj([]byte("two"), "b")))
	assert.Nil(t, b.Save(db, refObj([]byte("three"), "c")))

	// End of the range is exclusive.
	objs, err := b.GetIndexedRange(db, "main", []byte("a"), []byte("c"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(objs))

	// Open range covers everything.
	objs, err = b.GetIndexedRange(db, "main", nil, nil)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(objs))
}

func TestSequence(t *testing.T) {
	db := store.MemStore()
	b := refBucket()
	s := b.Sequence("id")

	val, err := s.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), val)

	bz, err := s.NextVal(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(2), DecodeSequence(bz))

	// Values are comparable as bytes.
	next, err := s.NextVal(db)
	assert.Nil(t, err)
	if bytes.Compare(bz, next) >= 0 {
		t.Fatal("sequence values must be strictly increasing")
	}

	// A sequence with a different name is independent.
	other := b.Sequence("other")
	val, err = other.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), val)
}
