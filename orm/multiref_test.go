package orm

import (
	"testing"

	"github.com/craig-iam-smith/graphene/weavetest/assert"
)

func TestMultiRefAddRemove(t *testing.T) {
	m := new(MultiRef)

	assert.Nil(t, m.Add([]byte("bob")))
	assert.Nil(t, m.Add([]byte("alice")))
	assert.Nil(t, m.Add([]byte("carl")))

	// Kept in sorted order.
	assert.Equal(t, [][]byte{
		[]byte("alice"),
		[]byte("bob"),
		[]byte("carl"),
	}, m.Refs)

	if err := m.Add([]byte("bob")); err == nil {
		t.Fatal("adding a duplicate ref must fail")
	}

	assert.Nil(t, m.Remove([]byte("bob")))
	assert.Equal(t, 2, m.NumRefs())

	if err := m.Remove([]byte("bob")); err == nil {
		t.Fatal("removing a missing ref must fail")
	}
}

func TestMultiRefRoundTrip(t *testing.T) {
	m, err := NewMultiRef([]byte("a"), []byte("b"))
	assert.Nil(t, err)

	bz, err := m.Marshal()
	assert.Nil(t, err)

	var got MultiRef
	assert.Nil(t, got.Unmarshal(bz))
	assert.Equal(t, m.Refs, got.Refs)
}
