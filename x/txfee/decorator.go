package txfee

import (
	"github.com/craig-iam-smith/graphene"
	"github.com/craig-iam-smith/graphene/coin"
	"github.com/craig-iam-smith/graphene/errors"
	"github.com/craig-iam-smith/graphene/x/cash"
)

// FeeMsg is implemented by messages that declare an operation fee together
// with the account the fee is collected from.
type FeeMsg interface {
	GetFee() *coin.Coin
	FeePayer() graphene.Address
}

// Decorator collects the fee declared by the transaction message. The fee is
// moved from the fee payer account to the collector account once the wrapped
// handler succeeds. Messages that do not declare a fee pass through
// unaffected.
type Decorator struct {
	ctrl      cash.CoinMover
	collector graphene.Address
}

var _ graphene.Decorator = Decorator{}

// NewDecorator returns a fee collecting decorator. All collected fees are
// credited to the collector account.
func NewDecorator(ctrl cash.CoinMover, collector graphene.Address) Decorator {
	return Decorator{
		ctrl:      ctrl,
		collector: collector,
	}
}

// Check verifies the declared fee and ensures the payer holds enough funds,
// without collecting anything yet.
func (d Decorator) Check(ctx graphene.Context, store graphene.KVStore, tx graphene.Tx, next graphene.Checker) (*graphene.CheckResult, error) {
	fee, payer, err := d.extractFee(tx)
	if err != nil {
		return nil, err
	}

	res, err := next.Check(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	if fee == nil {
		return res, nil
	}

	// Collect within the check cache so insufficient funds surface early.
	if err := d.ctrl.MoveCoins(store, payer, d.collector, *fee); err != nil {
		return nil, errors.Wrap(err, "cannot collect fee")
	}
	return res, nil
}

// Deliver executes the wrapped handler and on success collects the declared
// fee from the payer.
func (d Decorator) Deliver(ctx graphene.Context, store graphene.KVStore, tx graphene.Tx, next graphene.Deliverer) (*graphene.DeliverResult, error) {
	fee, payer, err := d.extractFee(tx)
	if err != nil {
		return nil, err
	}

	res, err := next.Deliver(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	if fee == nil {
		return res, nil
	}

	if err := d.ctrl.MoveCoins(store, payer, d.collector, *fee); err != nil {
		return nil, errors.Wrap(err, "cannot collect fee")
	}
	return res, nil
}

// extractFee returns the fee and payer declared by the transaction message.
// A nil fee means there is nothing to collect.
func (d Decorator) extractFee(tx graphene.Tx) (*coin.Coin, graphene.Address, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot load msg")
	}
	fm, ok := msg.(FeeMsg)
	if !ok {
		return nil, nil, nil
	}

	fee := fm.GetFee()
	if fee == nil || fee.IsZero() {
		return nil, nil, nil
	}
	if err := fee.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "invalid fee")
	}
	if !fee.IsPositive() {
		return nil, nil, errors.Wrap(errors.ErrInvalidAmount, "negative fee")
	}

	payer := fm.FeePayer()
	if err := payer.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "invalid fee payer")
	}
	return fee, payer, nil
}
