/*
Package cash defines a simple implementation of handling accounts with
multiple currencies.

Wallet: the model stored in a bucket keyed by the account address.

Controller: the machinery to move and issue funds, exposed to other
extensions that need to manipulate balances.
*/
package cash
