package weavetest

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/craig-iam-smith/graphene"
)

// NewCondition returns an instance of a condition with a random payload. Each
// call returns a new, unique instance.
func NewCondition() graphene.Condition {
	data := make([]byte, 32)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return graphene.NewCondition("sigs", "ed25519", data)
}

// SequenceID returns the n-th sequence counter state, encoded the way
// sequences are persisted in the database.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
