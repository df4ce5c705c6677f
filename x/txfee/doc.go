// Package txfee implements a decorator that collects the operation fee
// declared by a transaction message and credits it to a collector account.
package txfee
