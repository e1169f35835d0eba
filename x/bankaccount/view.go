package bankaccount

import "github.com/iov-one/jointbank"

// Snapshotter gives access to a consistent state of the database. The
// store passed to fn must not be used once fn returns.
type Snapshotter interface {
	ReadSnapshot(fn func(db jointbank.ReadOnlyKVStore) error) error
}

// View answers read queries. All results are snapshots that do not share
// memory with the database.
type View interface {
	Account(accountID uint64) (*Account, error)
	Accounts(participant jointbank.Address) ([]uint64, error)
	Owners(accountID uint64) ([]jointbank.Address, error)
	Balance(accountID uint64) (uint64, error)
	Approvals(accountID, withdrawID uint64) (int, error)
	RequiredApprovals(accountID uint64) (int, error)
	// AccountQuorum returns the account together with the number of
	// approvals its withdrawals need, read from the same state.
	AccountQuorum(accountID uint64) (*Account, int, error)
	// WithdrawalQuorum returns the request together with the number of
	// approvals it needs, read from the same state.
	WithdrawalQuorum(accountID, withdrawID uint64) (*WithdrawalRequest, int, error)
	Withdrawal(accountID, withdrawID uint64) (*WithdrawalRequest, error)
	Withdrawals(accountID uint64) ([]*WithdrawalRequest, error)
}

// NewView returns a View reading through given snapshotter.
func NewView(s Snapshotter) View {
	return storeView{snap: s, ctrl: NewController(nil)}
}

type storeView struct {
	snap Snapshotter
	ctrl *Controller
}

var _ View = storeView{}

func (v storeView) Account(accountID uint64) (acc *Account, err error) {
	err = v.snap.ReadSnapshot(func(db jointbank.ReadOnlyKVStore) error {
		acc, err = v.ctrl.Account(db, accountID)
		return err
	})
	return acc, err
}

func (v storeView) Accounts(participant jointbank.Address) (ids []uint64, err error) {
	err = v.snap.ReadSnapshot(func(db jointbank.ReadOnlyKVStore) error {
		ids, err = v.ctrl.Accounts(db, participant)
		return err
	})
	return ids, err
}

func (v storeView) Owners(accountID uint64) (owners []jointbank.Address, err error) {
	err = v.snap.ReadSnapshot(func(db jointbank.ReadOnlyKVStore) error {
		owners, err = v.ctrl.Owners(db, accountID)
		return err
	})
	return owners, err
}

func (v storeView) Balance(accountID uint64) (balance uint64, err error) {
	err = v.snap.ReadSnapshot(func(db jointbank.ReadOnlyKVStore) error {
		balance, err = v.ctrl.Balance(db, accountID)
		return err
	})
	return balance, err
}

func (v storeView) Approvals(accountID, withdrawID uint64) (n int, err error) {
	err = v.snap.ReadSnapshot(func(db jointbank.ReadOnlyKVStore) error {
		n, err = v.ctrl.Approvals(db, accountID, withdrawID)
		return err
	})
	return n, err
}

func (v storeView) RequiredApprovals(accountID uint64) (n int, err error) {
	err = v.snap.ReadSnapshot(func(db jointbank.ReadOnlyKVStore) error {
		n, err = v.ctrl.RequiredApprovals(db, accountID)
		return err
	})
	return n, err
}

func (v storeView) Withdrawal(accountID, withdrawID uint64) (req *WithdrawalRequest, err error) {
	err = v.snap.ReadSnapshot(func(db jointbank.ReadOnlyKVStore) error {
		req, err = v.ctrl.Withdrawal(db, accountID, withdrawID)
		return err
	})
	return req, err
}

func (v storeView) Withdrawals(accountID uint64) (reqs []*WithdrawalRequest, err error) {
	err = v.snap.ReadSnapshot(func(db jointbank.ReadOnlyKVStore) error {
		reqs, err = v.ctrl.Withdrawals(db, accountID)
		return err
	})
	return reqs, err
}

func (v storeView) AccountQuorum(accountID uint64) (acc *Account, required int, err error) {
	err = v.snap.ReadSnapshot(func(db jointbank.ReadOnlyKVStore) error {
		if acc, err = v.ctrl.Account(db, accountID); err != nil {
			return err
		}
		required, err = v.ctrl.RequiredApprovals(db, accountID)
		return err
	})
	return acc, required, err
}

func (v storeView) WithdrawalQuorum(accountID, withdrawID uint64) (req *WithdrawalRequest, required int, err error) {
	err = v.snap.ReadSnapshot(func(db jointbank.ReadOnlyKVStore) error {
		if req, err = v.ctrl.Withdrawal(db, accountID, withdrawID); err != nil {
			return err
		}
		required, err = v.ctrl.RequiredApprovals(db, accountID)
		return err
	})
	return req, required, err
}
