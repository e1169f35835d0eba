package bankaccount

import (
	"strconv"
	"time"

	"github.com/iov-one/jointbank"
)

const (
	tagEvent   = "bankaccount.event"
	tagAccount = "bankaccount.account"
	tagActor   = "bankaccount.actor"
	tagRequest = "bankaccount.request"
)

func tags(name string, accountID uint64, actor jointbank.Address) map[string]string {
	return map[string]string{
		tagEvent:   name,
		tagAccount: strconv.FormatUint(accountID, 10),
		tagActor:   actor.String(),
	}
}

// AccountCreated is emitted when an account was opened. Owners is the
// final owner set, with the creator at the end.
type AccountCreated struct {
	AccountID uint64              `json:"account_id"`
	Owners    []jointbank.Address `json:"owners"`
	Creator   jointbank.Address   `json:"creator"`
	Time      time.Time           `json:"timestamp"`
}

var _ jointbank.Event = (*AccountCreated)(nil)

// EventName implements jointbank.Event.
func (*AccountCreated) EventName() string { return "AccountCreated" }

// EventTime implements jointbank.Event.
func (e *AccountCreated) EventTime() time.Time { return e.Time }

// Tags implements jointbank.Event.
func (e *AccountCreated) Tags() map[string]string {
	return tags(e.EventName(), e.AccountID, e.Creator)
}

// Deposited is emitted when value was added to an account.
type Deposited struct {
	AccountID uint64            `json:"account_id"`
	Depositor jointbank.Address `json:"user"`
	Amount    uint64            `json:"value"`
	Time      time.Time         `json:"timestamp"`
}

var _ jointbank.Event = (*Deposited)(nil)

// EventName implements jointbank.Event.
func (*Deposited) EventName() string { return "Deposit" }

// EventTime implements jointbank.Event.
func (e *Deposited) EventTime() time.Time { return e.Time }

// Tags implements jointbank.Event.
func (e *Deposited) Tags() map[string]string {
	return tags(e.EventName(), e.AccountID, e.Depositor)
}

// WithdrawRequested is emitted when an owner proposed a withdrawal.
type WithdrawRequested struct {
	AccountID  uint64            `json:"account_id"`
	WithdrawID uint64            `json:"withdraw_id"`
	Requester  jointbank.Address `json:"user"`
	Amount     uint64            `json:"value"`
	Time       time.Time         `json:"timestamp"`
}

var _ jointbank.Event = (*WithdrawRequested)(nil)

// EventName implements jointbank.Event.
func (*WithdrawRequested) EventName() string { return "WithdrawRequested" }

// EventTime implements jointbank.Event.
func (e *WithdrawRequested) EventTime() time.Time { return e.Time }

// Tags implements jointbank.Event.
func (e *WithdrawRequested) Tags() map[string]string {
	t := tags(e.EventName(), e.AccountID, e.Requester)
	t[tagRequest] = strconv.FormatUint(e.WithdrawID, 10)
	return t
}

// Approved is emitted when an owner approved a withdrawal request.
type Approved struct {
	AccountID  uint64            `json:"account_id"`
	WithdrawID uint64            `json:"withdraw_id"`
	Approver   jointbank.Address `json:"user"`
	Approvals  int               `json:"approvals"`
	Time       time.Time         `json:"timestamp"`
}

var _ jointbank.Event = (*Approved)(nil)

// EventName implements jointbank.Event.
func (*Approved) EventName() string { return "Approved" }

// EventTime implements jointbank.Event.
func (e *Approved) EventTime() time.Time { return e.Time }

// Tags implements jointbank.Event.
func (e *Approved) Tags() map[string]string {
	t := tags(e.EventName(), e.AccountID, e.Approver)
	t[tagRequest] = strconv.FormatUint(e.WithdrawID, 10)
	return t
}

// Withdrawn is emitted when a withdrawal was executed and the value left
// the account.
type Withdrawn struct {
	AccountID  uint64            `json:"account_id"`
	WithdrawID uint64            `json:"withdraw_id"`
	Recipient  jointbank.Address `json:"user"`
	Amount     uint64            `json:"value"`
	Time       time.Time         `json:"timestamp"`
}

var _ jointbank.Event = (*Withdrawn)(nil)

// EventName implements jointbank.Event.
func (*Withdrawn) EventName() string { return "Withdraw" }

// EventTime implements jointbank.Event.
func (e *Withdrawn) EventTime() time.Time { return e.Time }

// Tags implements jointbank.Event.
func (e *Withdrawn) Tags() map[string]string {
	t := tags(e.EventName(), e.AccountID, e.Recipient)
	t[tagRequest] = strconv.FormatUint(e.WithdrawID, 10)
	return t
}
