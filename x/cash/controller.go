package cash

import (
	"github.com/craig-iam-smith/graphene"
	"github.com/craig-iam-smith/graphene/coin"
	"github.com/craig-iam-smith/graphene/errors"
)

// CoinMover is the interface that other extensions depend on. It allows
// moving funds between accounts without exposing the whole controller.
type CoinMover interface {
	// MoveCoins removes funds from the source account and adds them to the
	// destination account. Fails if the source doesn't have enough.
	MoveCoins(store graphene.KVStore, src graphene.Address, dest graphene.Address, amount coin.Coin) error
}

// Controller is the functionality needed by the handlers and decorators.
// BaseController should work plenty fine, but you can add other logic
// if so desired
type Controller interface {
	CoinMover

	// Balance returns the amount of funds stored under given account
	// address.
	Balance(graphene.KVStore, graphene.Address) (coin.Coins, error)

	// IssueCoins increases the number of funds on an account by the given
	// amount.
	IssueCoins(graphene.KVStore, graphene.Address, coin.Coin) error
}

// BaseController implements Controller interface, using the given bucket to
// store the state.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a base controller implementation.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount of funds stored under given account address.
func (c BaseController) Balance(store graphene.KVStore, src graphene.Address) (coin.Coins, error) {
	wallet, err := c.bucket.Get(store, src)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get account wallet")
	}
	if wallet == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "no account")
	}
	return wallet.Coins(), nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(store graphene.KVStore,
	src graphene.Address, dest graphene.Address,
	amount coin.Coin) error {

	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrInvalidAmount, "non-positive amount: %v", amount)
	}

	sender, err := c.bucket.Get(store, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	}
	if !sender.Coins().Contains(amount) {
		return errors.Wrap(errors.ErrInsufficientAmount, "funds")
	}

	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return err
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	// save them and return
	if err := c.bucket.Save(store, sender); err != nil {
		return err
	}
	return c.bucket.Save(store, recipient)
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
//
// Note the amount may also be negative:
// "the lord giveth and the lord taketh away"
func (c BaseController) IssueCoins(store graphene.KVStore,
	dest graphene.Address, amount coin.Coin) error {

	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(store, recipient)
}
