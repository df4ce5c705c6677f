package timelock

import (
	"github.com/craig-iam-smith/graphene"
	"github.com/craig-iam-smith/graphene/errors"
	"github.com/craig-iam-smith/graphene/x"
	"github.com/craig-iam-smith/graphene/x/cash"
)

const (
	createCost   = 300
	depositCost  = 150
	withdrawCost = 200
	abortCost    = 100
	completeCost = 250
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r graphene.Registry, auth x.Authenticator, ctrl cash.Controller) {
	balances := NewBalanceBucket()
	withdrawals := NewWithdrawalBucket()

	r.Handle(&CreateMsg{}, CreateHandler{
		auth:     auth,
		ctrl:     ctrl,
		balances: balances,
	})
	r.Handle(&DepositMsg{}, DepositHandler{
		auth:     auth,
		ctrl:     ctrl,
		balances: balances,
	})
	r.Handle(&WithdrawMsg{}, WithdrawHandler{
		auth:        auth,
		balances:    balances,
		withdrawals: withdrawals,
	})
	r.Handle(&AbortMsg{}, AbortHandler{
		auth:        auth,
		balances:    balances,
		withdrawals: withdrawals,
	})
	r.Handle(&CompleteMsg{}, CompleteHandler{
		auth:        auth,
		ctrl:        ctrl,
		balances:    balances,
		withdrawals: withdrawals,
	})
}

// CreateHandler creates a time locked balance, funding it with the initial
// deposit taken from the owner account.
type CreateHandler struct {
	auth     x.Authenticator
	ctrl     cash.Controller
	balances BalanceBucket
}

var _ graphene.Handler = CreateHandler{}

// Check verifies the message without creating anything.
func (h CreateHandler) Check(ctx graphene.Context, db graphene.KVStore, tx graphene.Tx) (*graphene.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &graphene.CheckResult{GasAllocated: createCost}, nil
}

// Deliver creates the balance and moves the initial deposit from the owner
// account. The id of the new balance is returned as data.
func (h CreateHandler) Deliver(ctx graphene.Context, db graphene.KVStore, tx graphene.Tx) (*graphene.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	balance := &Balance{
		Owner:               msg.Owner,
		Amount:              msg.InitialDeposit.Clone(),
		ReviewPeriodSeconds: msg.ReviewPeriodSeconds,
	}
	obj, err := h.balances.Create(db, balance)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create balance")
	}

	if msg.InitialDeposit.IsPositive() {
		dest := BalanceAddress(obj.Key())
		if err := h.ctrl.MoveCoins(db, msg.Owner, dest, *msg.InitialDeposit); err != nil {
			return nil, errors.Wrap(err, "cannot fund balance")
		}
	}
	return &graphene.DeliverResult{Data: obj.Key()}, nil
}

func (h CreateHandler) validate(ctx graphene.Context, db graphene.KVStore, tx graphene.Tx) (*CreateMsg, error) {
	var msg CreateMsg
	if err := graphene.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return &msg, nil
}

// DepositHandler adds funds to an existing balance.
type DepositHandler struct {
	auth     x.Authenticator
	ctrl     cash.Controller
	balances BalanceBucket
}

var _ graphene.Handler = DepositHandler{}

// Check verifies the message without moving any funds.
func (h DepositHandler) Check(ctx graphene.Context, db graphene.KVStore, tx graphene.Tx) (*graphene.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &graphene.CheckResult{GasAllocated: depositCost}, nil
}

// Deliver moves the deposit from the owner account into the balance.
func (h DepositHandler) Deliver(ctx graphene.Context, db graphene.KVStore, tx graphene.Tx) (*graphene.DeliverResult, error) {
	msg, balance, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	dest := BalanceAddress(msg.BalanceID)
	if err := h.ctrl.MoveCoins(db, msg.Owner, dest, *msg.Deposit); err != nil {
		return nil, errors.Wrap(err, "cannot fund balance")
	}

	total, err := balance.Amount.Add(*msg.Deposit)
	if err != nil {
		return nil, errors.Wrap(err, "cannot credit balance")
	}
	balance.Amount = &total
	if err := h.balances.Save(db, msg.BalanceID, balance); err != nil {
		return nil, errors.Wrap(err, "cannot save balance")
	}
	return &graphene.DeliverResult{}, nil
}

func (h DepositHandler) validate(ctx graphene.Context, db graphene.KVStore, tx graphene.Tx) (*DepositMsg, *Balance, error) {
	var msg DepositMsg
	if err := graphene.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	balance, err := h.balances.GetBalance(db, msg.BalanceID)
	if err != nil {
		return nil, nil, err
	}
	if !balance.Owner.Equals(msg.Owner) {
		return nil, nil, errors.Wrap(ErrNotOwner, "only the owner can deposit")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	if msg.Deposit.Ticker != balance.AssetType() {
		return nil, nil, errors.Wrapf(ErrInvalidAsset, "balance holds %s", balance.AssetType())
	}
	return &msg, balance, nil
}

// WithdrawHandler initiates a withdrawal from a balance. No funds move and
// the balance is not checked for sufficiency. Overcommitting is legal and
// surfaces only when completing.
type WithdrawHandler struct {
	auth        x.Authenticator
	balances    BalanceBucket
	withdrawals WithdrawalBucket
}

var _ graphene.Handler = WithdrawHandler{}

// Check verifies the message without creating anything.
func (h WithdrawHandler) Check(ctx graphene.Context, db graphene.KVStore, tx graphene.Tx) (*graphene.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &graphene.CheckResult{GasAllocated: withdrawCost}, nil
}

// Deliver creates the pending withdrawal. The finalization time is the
// current block time plus the review period of the balance. The id of the
// new withdrawal is returned as data.
func (h WithdrawHandler) Deliver(ctx graphene.Context, db graphene.KVStore, tx graphene.Tx) (*graphene.DeliverResult, error) {
	msg, balance, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	blockTime, err := graphene.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	quantity := msg.Amount.WithTicker("")
	withdrawal := &Withdrawal{
		BalanceID:  msg.BalanceID,
		Amount:     &quantity,
		Recipient:  msg.Recipient,
		FinalizeAt: graphene.AsUnixTime(blockTime).Add(balance.ReviewPeriodSeconds.Duration()),
	}
	obj, err := h.withdrawals.Create(db, withdrawal)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create withdrawal")
	}
	return &graphene.DeliverResult{Data: obj.Key()}, nil
}

func (h WithdrawHandler) validate(ctx graphene.Context, db graphene.KVStore, tx graphene.Tx) (*WithdrawMsg, *Balance, error) {
	var msg WithdrawMsg
	if err := graphene.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	balance, err := h.balances.GetBalance(db, msg.BalanceID)
	if err != nil {
		return nil, nil, err
	}
	if !balance.Owner.Equals(msg.Owner) {
		return nil, nil, errors.Wrap(ErrNotOwner, "only the owner can withdraw")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	if msg.Amount.Ticker != balance.AssetType() {
		return nil, nil, errors.Wrapf(ErrInvalidAsset, "balance holds %s", balance.AssetType())
	}
	return &msg, balance, nil
}

// AbortHandler cancels a pending withdrawal. Only the owner of the balance
// can abort, the recipient cannot.
type AbortHandler struct {
	auth        x.Authenticator
	balances    BalanceBucket
	withdrawals WithdrawalBucket
}

var _ graphene.Handler = AbortHandler{}

// Check verifies the message without removing anything.
func (h AbortHandler) Check(ctx graphene.Context, db graphene.KVStore, tx graphene.Tx) (*graphene.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &graphene.CheckResult{GasAllocated: abortCost}, nil
}

// Deliver removes the pending withdrawal. Funds were never reserved so
// there is nothing to release.
func (h AbortHandler) Deliver(ctx graphene.Context, db graphene.KVStore, tx graphene.Tx) (*graphene.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.withdrawals.Delete(db, msg.WithdrawalID); err != nil {
		return nil, errors.Wrap(err, "cannot delete withdrawal")
	}
	return &graphene.DeliverResult{}, nil
}

func (h AbortHandler) validate(ctx graphene.Context, db graphene.KVStore, tx graphene.Tx) (*AbortMsg, error) {
	var msg AbortMsg
	if err := graphene.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	withdrawal, err := h.withdrawals.GetWithdrawal(db, msg.WithdrawalID)
	if err != nil {
		return nil, err
	}
	balance, err := h.balances.GetBalance(db, withdrawal.BalanceID)
	if err != nil {
		return nil, err
	}
	if !balance.Owner.Equals(msg.Owner) {
		return nil, errors.Wrap(ErrNotOwner, "only the owner can abort")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return &msg, nil
}

// CompleteHandler executes a matured withdrawal, releasing the funds to the
// recipient and removing the withdrawal.
type CompleteHandler struct {
	auth        x.Authenticator
	ctrl        cash.Controller
	balances    BalanceBucket
	withdrawals WithdrawalBucket
}

var _ graphene.Handler = CompleteHandler{}

// Check verifies the completion without moving any funds.
func (h CompleteHandler) Check(ctx graphene.Context, db graphene.KVStore, tx graphene.Tx) (*graphene.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &graphene.CheckResult{GasAllocated: completeCost}, nil
}

// Deliver moves the funds from the balance to the recipient and removes the
// withdrawal so it cannot be completed twice.
func (h CompleteHandler) Deliver(ctx graphene.Context, db graphene.KVStore, tx graphene.Tx) (*graphene.DeliverResult, error) {
	msg, withdrawal, balance, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	amount := withdrawal.Amount.WithTicker(balance.AssetType())
	src := BalanceAddress(withdrawal.BalanceID)
	if err := h.ctrl.MoveCoins(db, src, withdrawal.Recipient, amount); err != nil {
		return nil, errors.Wrap(err, "cannot release funds")
	}

	rest, err := balance.Amount.Subtract(amount)
	if err != nil {
		return nil, errors.Wrap(err, "cannot debit balance")
	}
	balance.Amount = &rest
	if err := h.balances.Save(db, withdrawal.BalanceID, balance); err != nil {
		return nil, errors.Wrap(err, "cannot save balance")
	}

	if err := h.withdrawals.Delete(db, msg.WithdrawalID); err != nil {
		return nil, errors.Wrap(err, "cannot delete withdrawal")
	}
	return &graphene.DeliverResult{}, nil
}

// validate checks the completion conditions in a fixed order so that a
// request failing several of them always reports the same error: review
// period first, then balance sufficiency, then authorization, then the
// withdrawal terms.
func (h CompleteHandler) validate(ctx graphene.Context, db graphene.KVStore, tx graphene.Tx) (*CompleteMsg, *Withdrawal, *Balance, error) {
	var msg CompleteMsg
	if err := graphene.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, err
	}
	withdrawal, err := h.withdrawals.GetWithdrawal(db, msg.WithdrawalID)
	if err != nil {
		return nil, nil, nil, err
	}
	balance, err := h.balances.GetBalance(db, withdrawal.BalanceID)
	if err != nil {
		return nil, nil, nil, err
	}

	if !graphene.IsExpired(ctx, withdrawal.FinalizeAt) {
		return nil, nil, nil, errors.Wrapf(ErrUnderReview, "finalization at %s", withdrawal.FinalizeAt)
	}
	amount := withdrawal.Amount.WithTicker(balance.AssetType())
	if !balance.Amount.IsGTE(amount) {
		return nil, nil, nil, errors.Wrap(errors.ErrInsufficientAmount, "balance too low")
	}
	if !h.auth.HasAddress(ctx, msg.ActingAccount) {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "acting account signature missing")
	}
	if !msg.ActingAccount.Equals(balance.Owner) && !msg.ActingAccount.Equals(withdrawal.Recipient) {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the owner or the recipient can complete")
	}
	if !msg.Recipient.Equals(withdrawal.Recipient) {
		return nil, nil, nil, errors.Wrap(ErrMismatch, "recipient")
	}
	if quantity := msg.Amount.WithTicker(""); !quantity.Equals(*withdrawal.Amount) {
		return nil, nil, nil, errors.Wrap(ErrMismatch, "amount")
	}
	if msg.Amount.Ticker != balance.AssetType() {
		return nil, nil, nil, errors.Wrapf(ErrInvalidAsset, "balance holds %s", balance.AssetType())
	}
	return &msg, withdrawal, balance, nil
}
