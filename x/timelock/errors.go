package timelock

import (
	"github.com/craig-iam-smith/graphene/errors"
)

var (
	// ErrInvalidAsset is returned when an operation mixes currencies, for
	// example depositing bitcoin into a balance holding ether.
	ErrInvalidAsset = errors.Register(1210, "asset type mismatch")

	// ErrNotOwner is returned when an operation restricted to the balance
	// owner is attempted by another account.
	ErrNotOwner = errors.Register(1211, "not the balance owner")

	// ErrUnderReview is returned when completing a withdrawal before its
	// review period has passed.
	ErrUnderReview = errors.Register(1212, "review period not finished")

	// ErrMismatch is returned when the completion request does not repeat
	// the terms of the pending withdrawal.
	ErrMismatch = errors.Register(1213, "withdrawal terms mismatch")
)
