package bankaccount

import (
	"time"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/orm"
	"github.com/iov-one/jointbank/store"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r jointbank.Registry, auth jointbank.Authenticator, vault Vault) {
	ctrl := NewController(vault)
	r.Handle(&CreateAccountMsg{}, opHandler{auth: auth, run: ctrl.deliverCreate})
	r.Handle(&DepositMsg{}, opHandler{auth: auth, run: ctrl.deliverDeposit})
	r.Handle(&RequestWithdrawMsg{}, opHandler{auth: auth, run: ctrl.deliverRequest})
	r.Handle(&ApproveWithdrawMsg{}, opHandler{auth: auth, run: ctrl.deliverApprove})
	r.Handle(&WithdrawMsg{}, opHandler{auth: auth, run: ctrl.deliverWithdraw})
	r.Handle(&UpdateConfigurationMsg{}, NewConfigurationHandler(auth))
}

// RegisterQuery registers the account and withdrawal buckets as
// "/accounts" and "/withdrawals". Accounts of a participant are available
// under "/accounts/owner".
func RegisterQuery(qr jointbank.QueryRouter) {
	NewAccountBucket().Register("accounts", qr)
	NewWithdrawalBucket().Register("withdrawals", qr)
}

// operation is a single state transition run on behalf of the caller. It
// returns the event describing the change and the id of the affected
// entity.
type operation func(db jointbank.KVStore, caller jointbank.Address, tx jointbank.Tx, now time.Time) (jointbank.Event, []byte, error)

// opHandler adapts an operation to the jointbank.Handler interface.
type opHandler struct {
	auth jointbank.Authenticator
	run  operation
}

var _ jointbank.Handler = opHandler{}

// Check runs the operation against a throw away copy of the state, so that
// a transaction that would fail is rejected before it is included in a
// block.
func (h opHandler) Check(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.CheckResult, error) {
	cache := store.BTreeCacheable{KVStore: db}.CacheWrap()
	defer cache.Discard()

	_, data, err := h.exec(ctx, cache, tx)
	if err != nil {
		return nil, err
	}
	return &jointbank.CheckResult{Data: data}, nil
}

// Deliver applies the operation and returns its event.
func (h opHandler) Deliver(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.DeliverResult, error) {
	ev, data, err := h.exec(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &jointbank.DeliverResult{
		Data:   data,
		Log:    ev.EventName(),
		Events: []jointbank.Event{ev},
	}, nil
}

func (h opHandler) exec(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (jointbank.Event, []byte, error) {
	caller := jointbank.MainSigner(ctx, h.auth)
	if caller == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	now, err := jointbank.BlockTime(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "block time")
	}
	return h.run(db, caller, tx, now)
}

func (c *Controller) deliverCreate(db jointbank.KVStore, caller jointbank.Address, tx jointbank.Tx, now time.Time) (jointbank.Event, []byte, error) {
	var msg CreateAccountMsg
	if err := jointbank.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	ev, err := c.CreateAccount(db, caller, msg.Owners, now)
	if err != nil {
		return nil, nil, err
	}
	return ev, orm.SequenceKey(ev.AccountID), nil
}

func (c *Controller) deliverDeposit(db jointbank.KVStore, caller jointbank.Address, tx jointbank.Tx, now time.Time) (jointbank.Event, []byte, error) {
	var msg DepositMsg
	if err := jointbank.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	ev, err := c.Deposit(db, caller, msg.AccountID, msg.Amount, now)
	if err != nil {
		return nil, nil, err
	}
	return ev, orm.SequenceKey(ev.AccountID), nil
}

func (c *Controller) deliverRequest(db jointbank.KVStore, caller jointbank.Address, tx jointbank.Tx, now time.Time) (jointbank.Event, []byte, error) {
	var msg RequestWithdrawMsg
	if err := jointbank.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	ev, err := c.RequestWithdraw(db, caller, msg.AccountID, msg.Amount, now)
	if err != nil {
		return nil, nil, err
	}
	return ev, withdrawalKey(ev.AccountID, ev.WithdrawID), nil
}

func (c *Controller) deliverApprove(db jointbank.KVStore, caller jointbank.Address, tx jointbank.Tx, now time.Time) (jointbank.Event, []byte, error) {
	var msg ApproveWithdrawMsg
	if err := jointbank.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	ev, err := c.ApproveWithdraw(db, caller, msg.AccountID, msg.WithdrawID, now)
	if err != nil {
		return nil, nil, err
	}
	return ev, withdrawalKey(ev.AccountID, ev.WithdrawID), nil
}

func (c *Controller) deliverWithdraw(db jointbank.KVStore, caller jointbank.Address, tx jointbank.Tx, now time.Time) (jointbank.Event, []byte, error) {
	var msg WithdrawMsg
	if err := jointbank.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	ev, err := c.Withdraw(db, caller, msg.AccountID, msg.WithdrawID, now)
	if err != nil {
		return nil, nil, err
	}
	return ev, withdrawalKey(ev.AccountID, ev.WithdrawID), nil
}
