package timelock

import (
	"testing"

	"github.com/craig-iam-smith/graphene"
	"github.com/craig-iam-smith/graphene/coin"
	"github.com/craig-iam-smith/graphene/errors"
	"github.com/craig-iam-smith/graphene/weavetest"
)

func TestCreateMsgValidate(t *testing.T) {
	owner := weavetest.NewCondition().Address()

	cases := map[string]struct {
		msg     *CreateMsg
		wantErr *errors.Error
	}{
		"valid message": {
			msg: &CreateMsg{
				Fee:                 coin.NewCoinp(1, 0, "IOV"),
				Owner:               owner,
				InitialDeposit:      coin.NewCoinp(50, 0, "IOV"),
				ReviewPeriodSeconds: 3600,
			},
		},
		"zero initial deposit is allowed": {
			msg: &CreateMsg{
				Fee:                 coin.NewCoinp(1, 0, "IOV"),
				Owner:               owner,
				InitialDeposit:      coin.NewCoinp(0, 0, "IOV"),
				ReviewPeriodSeconds: 3600,
			},
		},
		"missing fee": {
			msg: &CreateMsg{
				Owner:               owner,
				InitialDeposit:      coin.NewCoinp(50, 0, "IOV"),
				ReviewPeriodSeconds: 3600,
			},
			wantErr: errors.ErrInvalidAmount,
		},
		"zero fee": {
			msg: &CreateMsg{
				Fee:                 coin.NewCoinp(0, 0, "IOV"),
				Owner:               owner,
				InitialDeposit:      coin.NewCoinp(50, 0, "IOV"),
				ReviewPeriodSeconds: 3600,
			},
			wantErr: errors.ErrInvalidAmount,
		},
		"missing owner": {
			msg: &CreateMsg{
				Fee:                 coin.NewCoinp(1, 0, "IOV"),
				InitialDeposit:      coin.NewCoinp(50, 0, "IOV"),
				ReviewPeriodSeconds: 3600,
			},
			wantErr: errors.ErrInvalidInput,
		},
		"missing initial deposit": {
			msg: &CreateMsg{
				Fee:                 coin.NewCoinp(1, 0, "IOV"),
				Owner:               owner,
				ReviewPeriodSeconds: 3600,
			},
			wantErr: errors.ErrInvalidAmount,
		},
		"initial deposit without a currency": {
			msg: &CreateMsg{
				Fee:                 coin.NewCoinp(1, 0, "IOV"),
				Owner:               owner,
				InitialDeposit:      coin.NewCoinp(0, 0, ""),
				ReviewPeriodSeconds: 3600,
			},
			wantErr: errors.ErrCurrency,
		},
		"negative initial deposit": {
			msg: &CreateMsg{
				Fee:                 coin.NewCoinp(1, 0, "IOV"),
				Owner:               owner,
				InitialDeposit:      coin.NewCoinp(-5, 0, "IOV"),
				ReviewPeriodSeconds: 3600,
			},
			wantErr: errors.ErrInvalidAmount,
		},
		"zero review period": {
			msg: &CreateMsg{
				Fee:                 coin.NewCoinp(1, 0, "IOV"),
				Owner:               owner,
				InitialDeposit:      coin.NewCoinp(50, 0, "IOV"),
				ReviewPeriodSeconds: 0,
			},
			wantErr: errors.ErrInvalidInput,
		},
		"negative review period": {
			msg: &CreateMsg{
				Fee:                 coin.NewCoinp(1, 0, "IOV"),
				Owner:               owner,
				InitialDeposit:      coin.NewCoinp(50, 0, "IOV"),
				ReviewPeriodSeconds: -1,
			},
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.msg.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestDepositMsgValidate(t *testing.T) {
	owner := weavetest.NewCondition().Address()

	cases := map[string]struct {
		msg     *DepositMsg
		wantErr *errors.Error
	}{
		"valid message": {
			msg: &DepositMsg{
				Fee:       coin.NewCoinp(1, 0, "IOV"),
				Owner:     owner,
				BalanceID: weavetest.SequenceID(1),
				Deposit:   coin.NewCoinp(10, 0, "IOV"),
			},
		},
		"missing fee": {
			msg: &DepositMsg{
				Owner:     owner,
				BalanceID: weavetest.SequenceID(1),
				Deposit:   coin.NewCoinp(10, 0, "IOV"),
			},
			wantErr: errors.ErrInvalidAmount,
		},
		"invalid balance id": {
			msg: &DepositMsg{
				Fee:       coin.NewCoinp(1, 0, "IOV"),
				Owner:     owner,
				BalanceID: []byte{1, 2, 3},
				Deposit:   coin.NewCoinp(10, 0, "IOV"),
			},
			wantErr: errors.ErrInvalidInput,
		},
		"zero deposit": {
			msg: &DepositMsg{
				Fee:       coin.NewCoinp(1, 0, "IOV"),
				Owner:     owner,
				BalanceID: weavetest.SequenceID(1),
				Deposit:   coin.NewCoinp(0, 0, "IOV"),
			},
			wantErr: errors.ErrInvalidAmount,
		},
		"negative deposit": {
			msg: &DepositMsg{
				Fee:       coin.NewCoinp(1, 0, "IOV"),
				Owner:     owner,
				BalanceID: weavetest.SequenceID(1),
				Deposit:   coin.NewCoinp(-10, 0, "IOV"),
			},
			wantErr: errors.ErrInvalidAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.msg.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestWithdrawMsgValidate(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	recipient := weavetest.NewCondition().Address()

	cases := map[string]struct {
		msg     *WithdrawMsg
		wantErr *errors.Error
	}{
		"valid message": {
			msg: &WithdrawMsg{
				Fee:       coin.NewCoinp(1, 0, "IOV"),
				Owner:     owner,
				BalanceID: weavetest.SequenceID(1),
				Amount:    coin.NewCoinp(10, 0, "IOV"),
				Recipient: recipient,
			},
		},
		"withdrawing to self is allowed": {
			msg: &WithdrawMsg{
				Fee:       coin.NewCoinp(1, 0, "IOV"),
				Owner:     owner,
				BalanceID: weavetest.SequenceID(1),
				Amount:    coin.NewCoinp(10, 0, "IOV"),
				Recipient: owner,
			},
		},
		"missing fee": {
			msg: &WithdrawMsg{
				Owner:     owner,
				BalanceID: weavetest.SequenceID(1),
				Amount:    coin.NewCoinp(10, 0, "IOV"),
				Recipient: recipient,
			},
			wantErr: errors.ErrInvalidAmount,
		},
		"zero amount": {
			msg: &WithdrawMsg{
				Fee:       coin.NewCoinp(1, 0, "IOV"),
				Owner:     owner,
				BalanceID: weavetest.SequenceID(1),
				Amount:    coin.NewCoinp(0, 0, "IOV"),
				Recipient: recipient,
			},
			wantErr: errors.ErrInvalidAmount,
		},
		"missing recipient": {
			msg: &WithdrawMsg{
				Fee:       coin.NewCoinp(1, 0, "IOV"),
				Owner:     owner,
				BalanceID: weavetest.SequenceID(1),
				Amount:    coin.NewCoinp(10, 0, "IOV"),
			},
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.msg.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestAbortMsgValidate(t *testing.T) {
	owner := weavetest.NewCondition().Address()

	cases := map[string]struct {
		msg     *AbortMsg
		wantErr *errors.Error
	}{
		"valid message": {
			msg: &AbortMsg{
				Fee:          coin.NewCoinp(1, 0, "IOV"),
				Owner:        owner,
				WithdrawalID: weavetest.SequenceID(1),
			},
		},
		"no fee is required": {
			msg: &AbortMsg{
				Owner:        owner,
				WithdrawalID: weavetest.SequenceID(1),
			},
		},
		"zero fee is allowed": {
			msg: &AbortMsg{
				Fee:          coin.NewCoinp(0, 0, ""),
				Owner:        owner,
				WithdrawalID: weavetest.SequenceID(1),
			},
		},
		"negative fee": {
			msg: &AbortMsg{
				Fee:          coin.NewCoinp(-1, 0, "IOV"),
				Owner:        owner,
				WithdrawalID: weavetest.SequenceID(1),
			},
			wantErr: errors.ErrInvalidAmount,
		},
		"missing owner": {
			msg: &AbortMsg{
				WithdrawalID: weavetest.SequenceID(1),
			},
			wantErr: errors.ErrInvalidInput,
		},
		"invalid withdrawal id": {
			msg: &AbortMsg{
				Owner:        owner,
				WithdrawalID: []byte("x"),
			},
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.msg.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestCompleteMsgValidate(t *testing.T) {
	acting := weavetest.NewCondition().Address()
	recipient := weavetest.NewCondition().Address()

	cases := map[string]struct {
		msg     *CompleteMsg
		wantErr *errors.Error
	}{
		"valid message": {
			msg: &CompleteMsg{
				Fee:           coin.NewCoinp(1, 0, "IOV"),
				ActingAccount: acting,
				Recipient:     recipient,
				Amount:        coin.NewCoinp(10, 0, "IOV"),
				WithdrawalID:  weavetest.SequenceID(1),
			},
		},
		"no fee is required": {
			msg: &CompleteMsg{
				ActingAccount: acting,
				Recipient:     recipient,
				Amount:        coin.NewCoinp(10, 0, "IOV"),
				WithdrawalID:  weavetest.SequenceID(1),
			},
		},
		"missing acting account": {
			msg: &CompleteMsg{
				Recipient:    recipient,
				Amount:       coin.NewCoinp(10, 0, "IOV"),
				WithdrawalID: weavetest.SequenceID(1),
			},
			wantErr: errors.ErrInvalidInput,
		},
		"missing recipient": {
			msg: &CompleteMsg{
				ActingAccount: acting,
				Amount:        coin.NewCoinp(10, 0, "IOV"),
				WithdrawalID:  weavetest.SequenceID(1),
			},
			wantErr: errors.ErrInvalidInput,
		},
		"zero amount": {
			msg: &CompleteMsg{
				ActingAccount: acting,
				Recipient:     recipient,
				Amount:        coin.NewCoinp(0, 0, "IOV"),
				WithdrawalID:  weavetest.SequenceID(1),
			},
			wantErr: errors.ErrInvalidAmount,
		},
		"invalid withdrawal id": {
			msg: &CompleteMsg{
				ActingAccount: acting,
				Recipient:     recipient,
				Amount:        coin.NewCoinp(10, 0, "IOV"),
				WithdrawalID:  nil,
			},
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.msg.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestMsgPaths(t *testing.T) {
	cases := map[string]graphene.Msg{
		"timelock/create":   &CreateMsg{},
		"timelock/deposit":  &DepositMsg{},
		"timelock/withdraw": &WithdrawMsg{},
		"timelock/abort":    &AbortMsg{},
		"timelock/complete": &CompleteMsg{},
	}
	for want, msg := range cases {
		if got := msg.Path(); got != want {
			t.Fatalf("want %q, got %q", want, got)
		}
	}
}
