package bankaccount

import (
	"testing"
	"time"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/store"
	"github.com/iov-one/jointbank/x/cash"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// fund issues value to the wallets of given participants.
func fund(t testing.TB, db jointbank.KVStore, amount uint64, addrs ...jointbank.Address) {
	t.Helper()
	ctrl := cash.NewController()
	for _, a := range addrs {
		require.NoError(t, ctrl.IssueCoins(db, a, amount))
	}
}

// walletBalance returns the value held by a participant outside of all
// accounts.
func walletBalance(t testing.TB, db jointbank.ReadOnlyKVStore, addr jointbank.Address) uint64 {
	t.Helper()
	b, err := cash.NewController().Balance(db, addr)
	require.NoError(t, err)
	return b
}

// failingVault returns an error on every release, after the accounting was
// already updated.
type failingVault struct {
	cash.BaseController
}

func (failingVault) Release(jointbank.KVStore, jointbank.Address, uint64) error {
	return errors.Wrap(errors.ErrState, "recipient rejected transfer")
}

// createAccount is a shortcut for tests that only need an account to
// exist.
func createAccount(t testing.TB, ctrl *Controller, db jointbank.KVStore, caller jointbank.Address, owners ...jointbank.Address) uint64 {
	t.Helper()
	ev, err := ctrl.CreateAccount(db, caller, owners, testNow)
	require.NoError(t, err)
	return ev.AccountID
}

func newTestStore() jointbank.CacheableKVStore {
	return store.MemStore()
}
