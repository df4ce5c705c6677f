/*
Package timelock implements time locked balances.

A balance holds funds of a single currency on behalf of its owner. The owner
can deposit at any time but funds can only leave through a two step
withdrawal. Initiating a withdrawal starts a review period, configured per
balance at creation time. Once the review period has passed anyone holding
the owner or the recipient key can complete the withdrawal and the funds are
released to the recipient. Until then the owner can abort.

Funds are not reserved when a withdrawal is initiated. It is legal to have
withdrawals pending that together exceed the balance. Sufficiency is checked
only at completion time, so overcommitted withdrawals fail late.
*/
package timelock
