/*
Package graphene defines the common interfaces that weave together the
subpackages of a small embeddable ledger: transactions carry messages,
messages are routed to handlers, handlers validate against and then mutate a
key-value store.

The package holds only interfaces and the simplest shared types (addresses,
conditions, unix times, results). Implementations live in the subpackages:
orm for persistence, store for the backing kv store, app for routing, x/...
for the extensions that implement actual operations.
*/
package graphene
