package graphene

import (
	"reflect"

	"github.com/craig-iam-smith/graphene/errors"
)

// Msg is a request for the ledger to take an action (make a state
// transition). It is just the request, and must be validated by the handler.
// All authentication information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Path returns the message path.
	// It is used by the router to locate the proper handler. Msg should
	// be created alongside the handler that corresponds to it.
	//
	// Multiple types may have the same value, and will end up at the
	// same handler.
	//
	// Must be in the form <extension>/<action>.
	Path() string

	// Validate performs internal consistency checks on the message,
	// without access to any state.
	Validate() error
}

// Marshaller is anything that can be represented in binary.
//
// Marshal may validate the data before serializing it and unless you
// previously validated the struct, errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal
//
// This is separated from Marshaller, as Unmarshal almost always requires
// a pointer, and functions that only need to marshal bytes can
// use the Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx represents the data sent from the user to the ledger.
// It includes the actual message, along with information needed to
// authenticate the sender (cryptographic signatures), and anything else
// needed to pass through middleware.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// TxDecoder can parse bytes into a Tx
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the path of the message, or (missing) if no message
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message from the transaction, ensures its validity,
// and loads it into the destination message instance. The destination must
// be a pointer of the same concrete type as the transaction message.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	if got, want := reflect.TypeOf(msg), reflect.TypeOf(destination); got != want {
		return errors.ErrInvalidType.Newf("want %T, got %T", destination, msg)
	}
	reflect.ValueOf(destination).Elem().Set(reflect.ValueOf(msg).Elem())
	return nil
}
