package timelock

import (
	"github.com/craig-iam-smith/graphene"
	"github.com/craig-iam-smith/graphene/coin"
	"github.com/craig-iam-smith/graphene/errors"
)

const (
	pathCreate   = "timelock/create"
	pathDeposit  = "timelock/deposit"
	pathWithdraw = "timelock/withdraw"
	pathAbort    = "timelock/abort"
	pathComplete = "timelock/complete"
)

var (
	_ graphene.Msg = (*CreateMsg)(nil)
	_ graphene.Msg = (*DepositMsg)(nil)
	_ graphene.Msg = (*WithdrawMsg)(nil)
	_ graphene.Msg = (*AbortMsg)(nil)
	_ graphene.Msg = (*CompleteMsg)(nil)
)

// Path implements graphene.Msg interface.
func (CreateMsg) Path() string { return pathCreate }

// Validate implements graphene.Msg interface.
func (m *CreateMsg) Validate() error {
	if err := validateFee(m.Fee, true); err != nil {
		return err
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if m.InitialDeposit == nil {
		return errors.Wrap(errors.ErrInvalidAmount, "missing initial deposit")
	}
	// A zero deposit is fine but it must declare a currency as it fixes
	// the currency of the balance.
	if err := m.InitialDeposit.Validate(); err != nil {
		return errors.Wrap(err, "initial deposit")
	}
	if !m.InitialDeposit.IsNonNegative() {
		return errors.Wrap(errors.ErrInvalidAmount, "negative initial deposit")
	}
	if m.ReviewPeriodSeconds <= 0 {
		return errors.Wrap(errors.ErrInvalidInput, "review period must be positive")
	}
	return nil
}

// FeePayer implements txfee.FeeMsg interface.
func (m *CreateMsg) FeePayer() graphene.Address { return m.Owner }

// Path implements graphene.Msg interface.
func (DepositMsg) Path() string { return pathDeposit }

// Validate implements graphene.Msg interface.
func (m *DepositMsg) Validate() error {
	if err := validateFee(m.Fee, true); err != nil {
		return err
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := validateID(m.BalanceID); err != nil {
		return errors.Wrap(err, "balance id")
	}
	if m.Deposit == nil {
		return errors.Wrap(errors.ErrInvalidAmount, "missing deposit")
	}
	if err := m.Deposit.Validate(); err != nil {
		return errors.Wrap(err, "deposit")
	}
	if !m.Deposit.IsPositive() {
		return errors.Wrap(errors.ErrInvalidAmount, "deposit must be positive")
	}
	return nil
}

// FeePayer implements txfee.FeeMsg interface.
func (m *DepositMsg) FeePayer() graphene.Address { return m.Owner }

// Path implements graphene.Msg interface.
func (WithdrawMsg) Path() string { return pathWithdraw }

// Validate implements graphene.Msg interface.
func (m *WithdrawMsg) Validate() error {
	if err := validateFee(m.Fee, true); err != nil {
		return err
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := validateID(m.BalanceID); err != nil {
		return errors.Wrap(err, "balance id")
	}
	if m.Amount == nil {
		return errors.Wrap(errors.ErrInvalidAmount, "missing amount")
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !m.Amount.IsPositive() {
		return errors.Wrap(errors.ErrInvalidAmount, "amount must be positive")
	}
	if err := m.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	return nil
}

// FeePayer implements txfee.FeeMsg interface.
func (m *WithdrawMsg) FeePayer() graphene.Address { return m.Owner }

// Path implements graphene.Msg interface.
func (AbortMsg) Path() string { return pathAbort }

// Validate implements graphene.Msg interface.
func (m *AbortMsg) Validate() error {
	if err := validateFee(m.Fee, false); err != nil {
		return err
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := validateID(m.WithdrawalID); err != nil {
		return errors.Wrap(err, "withdrawal id")
	}
	return nil
}

// FeePayer implements txfee.FeeMsg interface.
func (m *AbortMsg) FeePayer() graphene.Address { return m.Owner }

// Path implements graphene.Msg interface.
func (CompleteMsg) Path() string { return pathComplete }

// Validate implements graphene.Msg interface.
func (m *CompleteMsg) Validate() error {
	if err := validateFee(m.Fee, false); err != nil {
		return err
	}
	if err := m.ActingAccount.Validate(); err != nil {
		return errors.Wrap(err, "acting account")
	}
	if err := m.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if m.Amount == nil {
		return errors.Wrap(errors.ErrInvalidAmount, "missing amount")
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !m.Amount.IsPositive() {
		return errors.Wrap(errors.ErrInvalidAmount, "amount must be positive")
	}
	if err := validateID(m.WithdrawalID); err != nil {
		return errors.Wrap(err, "withdrawal id")
	}
	return nil
}

// FeePayer implements txfee.FeeMsg interface.
func (m *CompleteMsg) FeePayer() graphene.Address { return m.ActingAccount }

// validateFee ensures the declared fee is a well formed, non negative coin.
// Operations that do not require a fee accept both a nil and a zero fee.
func validateFee(fee *coin.Coin, required bool) error {
	if fee == nil || fee.IsZero() {
		if required {
			return errors.Wrap(errors.ErrInvalidAmount, "fee required")
		}
		return nil
	}
	if err := fee.Validate(); err != nil {
		return errors.Wrap(err, "fee")
	}
	if !fee.IsPositive() {
		return errors.Wrap(errors.ErrInvalidAmount, "negative fee")
	}
	return nil
}

// validateID ensures the raw id has the format used by the buckets of this
// package.
func validateID(id []byte) error {
	if len(id) != 8 {
		return errors.Wrap(errors.ErrInvalidInput, "id must be 8 bytes")
	}
	return nil
}
