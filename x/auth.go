package x

import (
	"github.com/craig-iam-smith/graphene"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding the signature extension for all handlers.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled
	GetConditions(graphene.Context) []graphene.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(graphene.Context, graphene.Address) bool
}
