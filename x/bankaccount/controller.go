package bankaccount

import (
	"time"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/orm"
)

// Vault moves value between participants and the pool backing all
// accounts. It must use the same database as the Controller so that value
// transfers commit or roll back together with the account state.
type Vault interface {
	// Collect moves value from a participant into the pool.
	Collect(db jointbank.KVStore, from jointbank.Address, amount uint64) error
	// Release moves value from the pool to a participant.
	Release(db jointbank.KVStore, to jointbank.Address, amount uint64) error
}

// Controller implements the account state machine on top of a KVStore.
//
// A failed operation may leave partial writes in the database it was given.
// Callers are expected to run every operation inside a cache wrap and
// discard it on error, as the Ledger and the savepoint decorator do.
type Controller struct {
	accounts    orm.ModelBucket
	withdrawals orm.ModelBucket
	vault       Vault
}

// NewController returns a controller transferring value through vault.
func NewController(vault Vault) *Controller {
	return &Controller{
		accounts:    NewAccountBucket(),
		withdrawals: NewWithdrawalBucket(),
		vault:       vault,
	}
}

// CreateAccount opens an account owned by the owners list and the caller.
func (c *Controller) CreateAccount(db jointbank.KVStore, caller jointbank.Address, owners []jointbank.Address, now time.Time) (*AccountCreated, error) {
	if err := caller.Validate(); err != nil {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "caller: %s", err)
	}
	for i, o := range owners {
		if err := o.Validate(); err != nil {
			return nil, errors.Field(fieldIndex("Owners", i), err, "invalid owner")
		}
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}

	var unique []jointbank.Address
	for _, o := range append([]jointbank.Address{caller}, owners...) {
		if !containsAddress(unique, o) {
			unique = append(unique, o)
		}
	}
	if len(unique) > int(conf.MaxOwners) {
		return nil, errors.Wrapf(ErrOwnershipLimitExceeded, "Max %d owners per account", conf.MaxOwners)
	}
	for i, o := range owners {
		if o.Equals(caller) || containsAddress(owners[:i], o) {
			return nil, errors.Wrapf(ErrDuplicateOwner, "owner %s", o)
		}
	}
	// The caller goes first so that its limit is reported before any
	// co-owner limit.
	for _, o := range unique {
		keys, err := c.accounts.IndexKeys(db, ownerIndex, o)
		if err != nil {
			return nil, errors.Wrap(err, "participant directory")
		}
		if len(keys) >= int(conf.MaxAccountsPerParticipant) {
			return nil, errors.Wrapf(ErrAccountLimitExceeded, "%s owns %d accounts", o, len(keys))
		}
	}

	final := make([]jointbank.Address, 0, len(owners)+1)
	for _, o := range owners {
		final = append(final, o.Clone())
	}
	final = append(final, caller.Clone())

	id, err := c.accounts.Sequence().NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "account id")
	}
	acc := &Account{
		ID:        id,
		Owners:    final,
		CreatedAt: now.Unix(),
	}
	if _, err := c.accounts.Put(db, accountKey(id), acc); err != nil {
		return nil, errors.Wrap(err, "save account")
	}
	return &AccountCreated{
		AccountID: id,
		Owners:    final,
		Creator:   caller,
		Time:      now,
	}, nil
}

// Deposit moves value from the caller into the account.
func (c *Controller) Deposit(db jointbank.KVStore, caller jointbank.Address, accountID, amount uint64, now time.Time) (*Deposited, error) {
	acc, err := c.ownedAccount(db, caller, accountID)
	if err != nil {
		return nil, err
	}
	if acc.Balance+amount < acc.Balance {
		return nil, errors.Wrapf(ErrBalanceOverflow, "account %d", accountID)
	}
	if err := c.vault.Collect(db, caller, amount); err != nil {
		return nil, errors.Wrap(err, "collect deposit")
	}
	acc.Balance += amount
	if _, err := c.accounts.Put(db, accountKey(accountID), acc); err != nil {
		return nil, errors.Wrap(err, "save account")
	}
	return &Deposited{
		AccountID: accountID,
		Depositor: caller,
		Amount:    amount,
		Time:      now,
	}, nil
}

// RequestWithdraw proposes a withdrawal of amount from the account. The
// balance is not checked until the withdrawal is executed.
func (c *Controller) RequestWithdraw(db jointbank.KVStore, caller jointbank.Address, accountID, amount uint64, now time.Time) (*WithdrawRequested, error) {
	acc, err := c.ownedAccount(db, caller, accountID)
	if err != nil {
		return nil, err
	}
	wid := acc.NextWithdrawID
	acc.NextWithdrawID++

	req := &WithdrawalRequest{
		AccountID: accountID,
		ID:        wid,
		Amount:    amount,
		Requester: caller.Clone(),
		Approvals: []jointbank.Address{caller.Clone()},
		CreatedAt: now.Unix(),
	}
	if _, err := c.withdrawals.Put(db, withdrawalKey(accountID, wid), req); err != nil {
		return nil, errors.Wrap(err, "save request")
	}
	if _, err := c.accounts.Put(db, accountKey(accountID), acc); err != nil {
		return nil, errors.Wrap(err, "save account")
	}
	return &WithdrawRequested{
		AccountID:  accountID,
		WithdrawID: wid,
		Requester:  caller,
		Amount:     amount,
		Time:       now,
	}, nil
}

// ApproveWithdraw adds the approval of the caller to a pending request.
func (c *Controller) ApproveWithdraw(db jointbank.KVStore, caller jointbank.Address, accountID, withdrawID uint64, now time.Time) (*Approved, error) {
	if _, err := c.ownedAccount(db, caller, accountID); err != nil {
		return nil, err
	}
	req, err := c.request(db, accountID, withdrawID)
	if err != nil {
		return nil, err
	}
	if req.Executed {
		return nil, errors.Wrapf(ErrAlreadyExecuted, "request %d", withdrawID)
	}
	if req.HasApproved(caller) {
		return nil, errors.Wrapf(ErrAlreadyApproved, "request %d", withdrawID)
	}
	req.Approvals = append(req.Approvals, caller.Clone())
	if _, err := c.withdrawals.Put(db, withdrawalKey(accountID, withdrawID), req); err != nil {
		return nil, errors.Wrap(err, "save request")
	}
	return &Approved{
		AccountID:  accountID,
		WithdrawID: withdrawID,
		Approver:   caller,
		Approvals:  len(req.Approvals),
		Time:       now,
	}, nil
}

// Withdraw executes an approved request and releases the value to its
// requester.
func (c *Controller) Withdraw(db jointbank.KVStore, caller jointbank.Address, accountID, withdrawID uint64, now time.Time) (*Withdrawn, error) {
	acc, err := c.ownedAccount(db, caller, accountID)
	if err != nil {
		return nil, err
	}
	req, err := c.request(db, accountID, withdrawID)
	if err != nil {
		return nil, err
	}
	if !req.Requester.Equals(caller) {
		return nil, errors.Wrapf(ErrNotRequestCreator, "request %d", withdrawID)
	}
	if req.Executed {
		return nil, errors.Wrapf(ErrAlreadyExecuted, "request %d", withdrawID)
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !conf.Quorum.Reached(len(req.Approvals), len(acc.Owners)) {
		return nil, errors.Wrapf(ErrNotApproved, "%d of %d approvals",
			len(req.Approvals), conf.Quorum.Required(len(acc.Owners)))
	}
	if req.Amount > acc.Balance {
		return nil, errors.Wrapf(ErrInsufficientBalance, "balance %d, requested %d", acc.Balance, req.Amount)
	}

	acc.Balance -= req.Amount
	req.Executed = true
	req.ExecutedAt = now.Unix()
	if _, err := c.accounts.Put(db, accountKey(accountID), acc); err != nil {
		return nil, errors.Wrap(err, "save account")
	}
	if _, err := c.withdrawals.Put(db, withdrawalKey(accountID, withdrawID), req); err != nil {
		return nil, errors.Wrap(err, "save request")
	}
	if err := c.vault.Release(db, caller, req.Amount); err != nil {
		return nil, errors.Wrap(err, "release withdrawal")
	}
	return &Withdrawn{
		AccountID:  accountID,
		WithdrawID: withdrawID,
		Recipient:  caller,
		Amount:     req.Amount,
		Time:       now,
	}, nil
}

// Account returns the account with given id.
func (c *Controller) Account(db jointbank.ReadOnlyKVStore, accountID uint64) (*Account, error) {
	var acc Account
	switch err := c.accounts.One(db, accountKey(accountID), &acc); {
	case err == nil:
		return &acc, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrAccountNotFound, "account %d", accountID)
	default:
		return nil, err
	}
}

// Accounts returns the ids of all accounts co-owned by participant in
// creation order.
func (c *Controller) Accounts(db jointbank.ReadOnlyKVStore, participant jointbank.Address) ([]uint64, error) {
	if err := participant.Validate(); err != nil {
		return nil, errors.Wrap(err, "participant")
	}
	keys, err := c.accounts.IndexKeys(db, ownerIndex, participant)
	if err != nil {
		return nil, errors.Wrap(err, "participant directory")
	}
	ids := make([]uint64, 0, len(keys))
	for _, k := range keys {
		id, err := orm.ParseSequenceKey(k)
		if err != nil {
			return nil, errors.Wrap(err, "account key")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Owners returns the owners of an account in the order they were added.
func (c *Controller) Owners(db jointbank.ReadOnlyKVStore, accountID uint64) ([]jointbank.Address, error) {
	acc, err := c.Account(db, accountID)
	if err != nil {
		return nil, err
	}
	return acc.Owners, nil
}

// Balance returns the pooled balance of an account.
func (c *Controller) Balance(db jointbank.ReadOnlyKVStore, accountID uint64) (uint64, error) {
	acc, err := c.Account(db, accountID)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

// Approvals returns the number of owners that approved a request,
// including its requester.
func (c *Controller) Approvals(db jointbank.ReadOnlyKVStore, accountID, withdrawID uint64) (int, error) {
	req, err := c.Withdrawal(db, accountID, withdrawID)
	if err != nil {
		return 0, err
	}
	return len(req.Approvals), nil
}

// RequiredApprovals returns the number of approvals a request of the
// account needs before it can be executed.
func (c *Controller) RequiredApprovals(db jointbank.ReadOnlyKVStore, accountID uint64) (int, error) {
	acc, err := c.Account(db, accountID)
	if err != nil {
		return 0, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return 0, err
	}
	return conf.Quorum.Required(len(acc.Owners)), nil
}

// Withdrawal returns a request of an existing account.
func (c *Controller) Withdrawal(db jointbank.ReadOnlyKVStore, accountID, withdrawID uint64) (*WithdrawalRequest, error) {
	if _, err := c.Account(db, accountID); err != nil {
		return nil, err
	}
	return c.request(db, accountID, withdrawID)
}

// Withdrawals returns all requests of an account ordered by id.
func (c *Controller) Withdrawals(db jointbank.ReadOnlyKVStore, accountID uint64) ([]*WithdrawalRequest, error) {
	if _, err := c.Account(db, accountID); err != nil {
		return nil, err
	}
	it, err := c.withdrawals.PrefixScan(db, accountKey(accountID), false)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []*WithdrawalRequest
	for {
		var req WithdrawalRequest
		switch _, err := it.Next(&req); {
		case err == nil:
			res = append(res, &req)
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

// ownedAccount loads an account and ensures the caller is one of its
// owners.
func (c *Controller) ownedAccount(db jointbank.ReadOnlyKVStore, caller jointbank.Address, accountID uint64) (*Account, error) {
	acc, err := c.Account(db, accountID)
	if err != nil {
		return nil, err
	}
	if !acc.HasOwner(caller) {
		return nil, errors.Wrapf(ErrNotOwner, "%s of account %d", caller, accountID)
	}
	return acc, nil
}

func (c *Controller) request(db jointbank.ReadOnlyKVStore, accountID, withdrawID uint64) (*WithdrawalRequest, error) {
	var req WithdrawalRequest
	switch err := c.withdrawals.One(db, withdrawalKey(accountID, withdrawID), &req); {
	case err == nil:
		return &req, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrRequestNotFound, "request %d of account %d", withdrawID, accountID)
	default:
		return nil, err
	}
}
