package timelock

import (
	"github.com/craig-iam-smith/graphene"
	"github.com/craig-iam-smith/graphene/errors"
	"github.com/craig-iam-smith/graphene/orm"
)

var _ orm.CloneableData = (*Balance)(nil)
var _ orm.CloneableData = (*Withdrawal)(nil)

// Validate enforces that this is a valid balance.
func (b *Balance) Validate() error {
	if err := b.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if b.Amount == nil {
		return errors.Wrap(errors.ErrInvalidAmount, "missing amount")
	}
	if err := b.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !b.Amount.IsNonNegative() {
		return errors.Wrap(errors.ErrInvalidAmount, "negative amount")
	}
	if b.ReviewPeriodSeconds <= 0 {
		return errors.Wrap(errors.ErrInvalidInput, "review period must be positive")
	}
	return nil
}

// AssetType returns the ticker of the currency this balance holds. The
// currency is fixed at creation time and deposits and withdrawals must use
// it.
func (b *Balance) AssetType() string {
	if b.Amount == nil {
		return ""
	}
	return b.Amount.Ticker
}

// Copy produces a deep copy of this balance.
func (b *Balance) Copy() orm.CloneableData {
	return &Balance{
		Owner:               append(graphene.Address{}, b.Owner...),
		Amount:              b.Amount.Clone(),
		ReviewPeriodSeconds: b.ReviewPeriodSeconds,
	}
}

// Validate enforces that this is a valid withdrawal. The amount is a bare
// quantity, the currency is defined by the referenced balance.
func (w *Withdrawal) Validate() error {
	if err := validateID(w.BalanceID); err != nil {
		return errors.Wrap(err, "balance id")
	}
	if w.Amount == nil {
		return errors.Wrap(errors.ErrInvalidAmount, "missing amount")
	}
	if w.Amount.Ticker != "" {
		return errors.Wrap(errors.ErrInvalidState, "amount must not declare a currency")
	}
	if !w.Amount.IsPositive() {
		return errors.Wrap(errors.ErrInvalidAmount, "amount must be positive")
	}
	if err := w.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if w.FinalizeAt == 0 {
		return errors.Wrap(errors.ErrInvalidState, "missing finalization time")
	}
	if err := w.FinalizeAt.Validate(); err != nil {
		return errors.Wrap(err, "finalization time")
	}
	return nil
}

// Copy produces a deep copy of this withdrawal.
func (w *Withdrawal) Copy() orm.CloneableData {
	return &Withdrawal{
		BalanceID:  append([]byte{}, w.BalanceID...),
		Amount:     w.Amount.Clone(),
		Recipient:  append(graphene.Address{}, w.Recipient...),
		FinalizeAt: w.FinalizeAt,
	}
}

// BalanceCondition returns the condition guarding the funds deposited into
// the balance with the given id.
func BalanceCondition(id []byte) graphene.Condition {
	return graphene.NewCondition("timelock", "seq", id)
}

// BalanceAddress returns the address of the account holding the funds of
// the balance with the given id.
func BalanceAddress(id []byte) graphene.Address {
	return BalanceCondition(id).Address()
}

// BalanceBucket is a type safe bucket holding balances. Each balance is
// stored under an 8 byte sequence id and indexed by owner.
type BalanceBucket struct {
	orm.Bucket
	idSeq orm.Sequence
}

// NewBalanceBucket initializes a BalanceBucket.
func NewBalanceBucket() BalanceBucket {
	b := orm.NewBucket("timelock", orm.NewSimpleObj(nil, &Balance{})).
		WithIndex("owner", balanceOwner, false)
	return BalanceBucket{
		Bucket: b,
		idSeq:  b.Sequence(orm.SeqID),
	}
}

func balanceOwner(obj orm.Object) ([]byte, error) {
	b, err := asBalance(obj)
	if err != nil || b == nil {
		return nil, err
	}
	return b.Owner, nil
}

func asBalance(obj orm.Object) (*Balance, error) {
	if obj == nil || obj.Value() == nil {
		return nil, nil
	}
	b, ok := obj.Value().(*Balance)
	if !ok {
		return nil, errors.Wrap(errors.ErrInvalidModel, "not a balance")
	}
	return b, nil
}

// Create saves given balance under a newly acquired sequence id and returns
// the stored object. The id is available through the object key.
func (b BalanceBucket) Create(db graphene.KVStore, balance *Balance) (orm.Object, error) {
	id, err := b.idSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire id")
	}
	obj := orm.NewSimpleObj(id, balance)
	return obj, b.Bucket.Save(db, obj)
}

// GetBalance loads the balance with given id. Missing balances are
// reported as ErrNotFound.
func (b BalanceBucket) GetBalance(db graphene.ReadOnlyKVStore, id []byte) (*Balance, error) {
	obj, err := b.Get(db, id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "balance %x", id)
	}
	return asBalance(obj)
}

// Save persists the state of given balance under its id.
func (b BalanceBucket) Save(db graphene.KVStore, id []byte, balance *Balance) error {
	return b.Bucket.Save(db, orm.NewSimpleObj(id, balance))
}

// ByOwner returns all balances that belong to given owner.
func (b BalanceBucket) ByOwner(db graphene.ReadOnlyKVStore, owner graphene.Address) ([]orm.Object, error) {
	return b.GetIndexed(db, "owner", owner)
}

// WithdrawalBucket is a type safe bucket holding pending withdrawals. Each
// withdrawal is stored under an 8 byte sequence id and indexed both by the
// balance it draws from and by its finalization time.
type WithdrawalBucket struct {
	orm.Bucket
	idSeq orm.Sequence
}

// NewWithdrawalBucket initializes a WithdrawalBucket.
func NewWithdrawalBucket() WithdrawalBucket {
	b := orm.NewBucket("withdrawal", orm.NewSimpleObj(nil, &Withdrawal{})).
		WithIndex("balance", withdrawalBalance, false).
		WithIndex("finalize", withdrawalFinalize, false)
	return WithdrawalBucket{
		Bucket: b,
		idSeq:  b.Sequence(orm.SeqID),
	}
}

func withdrawalBalance(obj orm.Object) ([]byte, error) {
	w, err := asWithdrawal(obj)
	if err != nil || w == nil {
		return nil, err
	}
	return w.BalanceID, nil
}

func withdrawalFinalize(obj orm.Object) ([]byte, error) {
	w, err := asWithdrawal(obj)
	if err != nil || w == nil {
		return nil, err
	}
	return orm.EncodeSequence(int64(w.FinalizeAt)), nil
}

func asWithdrawal(obj orm.Object) (*Withdrawal, error) {
	if obj == nil || obj.Value() == nil {
		return nil, nil
	}
	w, ok := obj.Value().(*Withdrawal)
	if !ok {
		return nil, errors.Wrap(errors.ErrInvalidModel, "not a withdrawal")
	}
	return w, nil
}

// Create saves given withdrawal under a newly acquired sequence id and
// returns the stored object.
func (b WithdrawalBucket) Create(db graphene.KVStore, withdrawal *Withdrawal) (orm.Object, error) {
	id, err := b.idSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire id")
	}
	obj := orm.NewSimpleObj(id, withdrawal)
	return obj, b.Bucket.Save(db, obj)
}

// GetWithdrawal loads the withdrawal with given id. Missing withdrawals are
// reported as ErrNotFound. A withdrawal is missing both when it never
// existed and when it was already aborted or completed.
func (b WithdrawalBucket) GetWithdrawal(db graphene.ReadOnlyKVStore, id []byte) (*Withdrawal, error) {
	obj, err := b.Get(db, id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "withdrawal %x", id)
	}
	return asWithdrawal(obj)
}

// ByBalance returns all pending withdrawals drawing from given balance.
func (b WithdrawalBucket) ByBalance(db graphene.ReadOnlyKVStore, balanceID []byte) ([]orm.Object, error) {
	return b.GetIndexed(db, "balance", balanceID)
}

// Due returns all pending withdrawals with a finalization time not after
// now, ordered by finalization time.
func (b WithdrawalBucket) Due(db graphene.ReadOnlyKVStore, now graphene.UnixTime) ([]orm.Object, error) {
	end := orm.EncodeSequence(int64(now) + 1)
	return b.GetIndexedRange(db, "finalize", nil, end)
}

// DueWithdrawals returns all pending withdrawals that can be completed at
// given time. This is a read only helper, nothing sweeps matured
// withdrawals automatically.
func DueWithdrawals(db graphene.ReadOnlyKVStore, now graphene.UnixTime) ([]orm.Object, error) {
	return NewWithdrawalBucket().Due(db, now)
}
