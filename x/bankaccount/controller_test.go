package bankaccount

import (
	"testing"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/gconf"
	"github.com/iov-one/jointbank/jbtest"
	"github.com/iov-one/jointbank/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAccount(t *testing.T) {
	alice := jbtest.NewAddress()
	bob := jbtest.NewAddress()
	carol := jbtest.NewAddress()
	dave := jbtest.NewAddress()
	eve := jbtest.NewAddress()

	cases := map[string]struct {
		caller     jointbank.Address
		owners     []jointbank.Address
		wantErr    *errors.Error
		wantOwners []jointbank.Address
	}{
		"single owner": {
			caller:     alice,
			wantOwners: []jointbank.Address{alice},
		},
		"four owners": {
			caller:     alice,
			owners:     []jointbank.Address{bob, carol, dave},
			wantOwners: []jointbank.Address{bob, carol, dave, alice},
		},
		"five owners": {
			caller:  alice,
			owners:  []jointbank.Address{bob, carol, dave, eve},
			wantErr: ErrOwnershipLimitExceeded,
		},
		"limit is checked before duplicates": {
			caller:  alice,
			owners:  []jointbank.Address{bob, carol, dave, dave, eve},
			wantErr: ErrOwnershipLimitExceeded,
		},
		"duplicated co-owner": {
			caller:  alice,
			owners:  []jointbank.Address{bob, bob},
			wantErr: ErrDuplicateOwner,
		},
		"caller listed as co-owner": {
			caller:  alice,
			owners:  []jointbank.Address{bob, alice},
			wantErr: ErrDuplicateOwner,
		},
		"anonymous caller": {
			owners:  []jointbank.Address{bob},
			wantErr: errors.ErrUnauthorized,
		},
		"invalid co-owner": {
			caller:  alice,
			owners:  []jointbank.Address{jointbank.Address("short")},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := newTestStore()
			ctrl := NewController(cash.NewController())

			ev, err := ctrl.CreateAccount(db, tc.caller, tc.owners, testNow)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %+v", err)
				n, err := ctrl.accounts.Sequence().Count(db)
				require.NoError(t, err)
				assert.EqualValues(t, 0, n)
				return
			}
			require.NoError(t, err)
			assert.EqualValues(t, 0, ev.AccountID)
			assert.Equal(t, tc.wantOwners, ev.Owners)
			assert.Equal(t, testNow, ev.EventTime())

			owners, err := ctrl.Owners(db, ev.AccountID)
			require.NoError(t, err)
			assert.Equal(t, tc.wantOwners, owners)

			for _, o := range tc.wantOwners {
				ids, err := ctrl.Accounts(db, o)
				require.NoError(t, err)
				assert.Equal(t, []uint64{ev.AccountID}, ids)
			}
		})
	}
}

func TestAccountLimit(t *testing.T) {
	alice := jbtest.NewAddress()
	bob := jbtest.NewAddress()
	carol := jbtest.NewAddress()

	db := newTestStore()
	ctrl := NewController(cash.NewController())

	for i := 0; i < DefaultMaxAccountsPerParticipant; i++ {
		createAccount(t, ctrl, db, alice)
	}
	ids, err := ctrl.Accounts(db, alice)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1, 2}, ids)

	_, err = ctrl.CreateAccount(db, alice, nil, testNow)
	assert.True(t, ErrAccountLimitExceeded.Is(err), "%+v", err)

	// Co-owners are bound by the same limit.
	for i := 0; i < DefaultMaxAccountsPerParticipant; i++ {
		createAccount(t, ctrl, db, bob)
	}
	_, err = ctrl.CreateAccount(db, carol, []jointbank.Address{bob}, testNow)
	assert.True(t, ErrAccountLimitExceeded.Is(err), "%+v", err)

	ids, err = ctrl.Accounts(db, carol)
	require.NoError(t, err)
	assert.Empty(t, ids)

	// Existing accounts of a participant at the limit keep working.
	fund(t, db, 10, alice)
	_, err = ctrl.Deposit(db, alice, 2, 10, testNow)
	require.NoError(t, err)
	_, err = ctrl.RequestWithdraw(db, alice, 2, 5, testNow)
	require.NoError(t, err)
}

func TestDeposit(t *testing.T) {
	alice := jbtest.NewAddress()
	bob := jbtest.NewAddress()
	mallory := jbtest.NewAddress()

	cases := map[string]struct {
		caller      jointbank.Address
		accountID   uint64
		amount      uint64
		wantErr     *errors.Error
		wantBalance uint64
	}{
		"owner deposit": {
			caller:      bob,
			amount:      40,
			wantBalance: 40,
		},
		"zero deposit": {
			caller: alice,
		},
		"not an owner": {
			caller:  mallory,
			amount:  10,
			wantErr: ErrNotOwner,
		},
		"unknown account": {
			caller:    alice,
			accountID: 99,
			amount:    10,
			wantErr:   ErrAccountNotFound,
		},
		"more than the wallet holds": {
			caller:  alice,
			amount:  101,
			wantErr: errors.ErrInsufficientAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := newTestStore()
			fund(t, db, 100, alice, bob, mallory)
			ctrl := NewController(cash.NewController())
			id := createAccount(t, ctrl, db, alice, bob)

			ev, err := ctrl.Deposit(db, tc.caller, tc.accountID, tc.amount, testNow)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %+v", err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Deposit", ev.EventName())
				assert.Equal(t, tc.amount, ev.Amount)
				assert.Equal(t, 100-tc.amount, walletBalance(t, db, tc.caller))
			}

			balance, err := ctrl.Balance(db, id)
			require.NoError(t, err)
			assert.Equal(t, tc.wantBalance, balance)
		})
	}
}

func TestDepositOverflow(t *testing.T) {
	alice := jbtest.NewAddress()
	db := newTestStore()
	ctrl := NewController(cash.NewController())
	id := createAccount(t, ctrl, db, alice)

	acc, err := ctrl.Account(db, id)
	require.NoError(t, err)
	acc.Balance = ^uint64(0) - 5
	_, err = ctrl.accounts.Put(db, accountKey(id), acc)
	require.NoError(t, err)

	fund(t, db, 10, alice)
	_, err = ctrl.Deposit(db, alice, id, 6, testNow)
	assert.True(t, ErrBalanceOverflow.Is(err), "%+v", err)
	assert.EqualValues(t, 10, walletBalance(t, db, alice))
}

func TestWithdrawalWorkflow(t *testing.T) {
	alice := jbtest.NewAddress()
	bob := jbtest.NewAddress()
	carol := jbtest.NewAddress()
	dave := jbtest.NewAddress()
	mallory := jbtest.NewAddress()

	db := newTestStore()
	fund(t, db, 100, alice)
	ctrl := NewController(cash.NewController())
	id := createAccount(t, ctrl, db, alice, bob, carol, dave)
	_, err := ctrl.Deposit(db, alice, id, 60, testNow)
	require.NoError(t, err)

	_, err = ctrl.RequestWithdraw(db, mallory, id, 10, testNow)
	assert.True(t, ErrNotOwner.Is(err))

	// Requesting more than the balance is allowed.
	big, err := ctrl.RequestWithdraw(db, bob, id, 1000, testNow)
	require.NoError(t, err)
	assert.EqualValues(t, 0, big.WithdrawID)

	req, err := ctrl.RequestWithdraw(db, bob, id, 25, testNow)
	require.NoError(t, err)
	assert.EqualValues(t, 1, req.WithdrawID)

	n, err := ctrl.Approvals(db, id, req.WithdrawID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = ctrl.ApproveWithdraw(db, bob, id, req.WithdrawID, testNow)
	assert.True(t, ErrAlreadyApproved.Is(err), "requester approval is implied")
	_, err = ctrl.ApproveWithdraw(db, mallory, id, req.WithdrawID, testNow)
	assert.True(t, ErrNotOwner.Is(err))
	_, err = ctrl.ApproveWithdraw(db, carol, id, 7, testNow)
	assert.True(t, ErrRequestNotFound.Is(err))

	_, err = ctrl.Withdraw(db, bob, id, req.WithdrawID, testNow)
	assert.True(t, ErrNotApproved.Is(err), "%+v", err)

	ap, err := ctrl.ApproveWithdraw(db, carol, id, req.WithdrawID, testNow)
	require.NoError(t, err)
	assert.Equal(t, 2, ap.Approvals)

	_, err = ctrl.ApproveWithdraw(db, carol, id, req.WithdrawID, testNow)
	assert.True(t, ErrAlreadyApproved.Is(err))

	required, err := ctrl.RequiredApprovals(db, id)
	require.NoError(t, err)
	assert.Equal(t, 3, required)

	_, err = ctrl.Withdraw(db, bob, id, req.WithdrawID, testNow)
	assert.True(t, ErrNotApproved.Is(err), "three of four owners must approve")

	_, err = ctrl.ApproveWithdraw(db, alice, id, req.WithdrawID, testNow)
	require.NoError(t, err)

	_, err = ctrl.Withdraw(db, carol, id, req.WithdrawID, testNow)
	assert.True(t, ErrNotRequestCreator.Is(err))
	_, err = ctrl.Withdraw(db, mallory, id, req.WithdrawID, testNow)
	assert.True(t, ErrNotOwner.Is(err))

	ev, err := ctrl.Withdraw(db, bob, id, req.WithdrawID, testNow)
	require.NoError(t, err)
	assert.Equal(t, "Withdraw", ev.EventName())
	assert.EqualValues(t, 25, ev.Amount)

	balance, err := ctrl.Balance(db, id)
	require.NoError(t, err)
	assert.EqualValues(t, 35, balance)
	assert.EqualValues(t, 25, walletBalance(t, db, bob))

	_, err = ctrl.Withdraw(db, bob, id, req.WithdrawID, testNow)
	assert.True(t, ErrAlreadyExecuted.Is(err))
	_, err = ctrl.ApproveWithdraw(db, alice, id, req.WithdrawID, testNow)
	assert.True(t, ErrAlreadyExecuted.Is(err))

	// Quorum does not cover a missing balance.
	for _, o := range []jointbank.Address{alice, carol} {
		_, err := ctrl.ApproveWithdraw(db, o, id, big.WithdrawID, testNow)
		require.NoError(t, err)
	}
	_, err = ctrl.Withdraw(db, bob, id, big.WithdrawID, testNow)
	assert.True(t, ErrInsufficientBalance.Is(err))

	all, err := ctrl.Withdrawals(db, id)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.False(t, all[0].Executed)
	assert.True(t, all[1].Executed)
	assert.Equal(t, testNow.Unix(), all[1].ExecutedAt)
}

func TestQuorumConfiguration(t *testing.T) {
	alice := jbtest.NewAddress()
	bob := jbtest.NewAddress()
	carol := jbtest.NewAddress()

	db := newTestStore()
	fund(t, db, 10, alice)
	ctrl := NewController(cash.NewController())
	id := createAccount(t, ctrl, db, alice, bob, carol)
	_, err := ctrl.Deposit(db, alice, id, 10, testNow)
	require.NoError(t, err)

	conf := DefaultConfiguration()
	conf.Quorum = QuorumUnanimous
	require.NoError(t, gconf.Save(db, packageName, &conf))

	req, err := ctrl.RequestWithdraw(db, alice, id, 4, testNow)
	require.NoError(t, err)
	_, err = ctrl.ApproveWithdraw(db, bob, id, req.WithdrawID, testNow)
	require.NoError(t, err)

	// A majority is not enough.
	_, err = ctrl.Withdraw(db, alice, id, req.WithdrawID, testNow)
	assert.True(t, ErrNotApproved.Is(err))

	_, err = ctrl.ApproveWithdraw(db, carol, id, req.WithdrawID, testNow)
	require.NoError(t, err)
	_, err = ctrl.Withdraw(db, alice, id, req.WithdrawID, testNow)
	require.NoError(t, err)
	assert.EqualValues(t, 4, walletBalance(t, db, alice))
}

func TestQueriesOfUnknownEntities(t *testing.T) {
	db := newTestStore()
	ctrl := NewController(cash.NewController())

	_, err := ctrl.Balance(db, 3)
	assert.True(t, ErrAccountNotFound.Is(err))
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = ctrl.Owners(db, 3)
	assert.True(t, ErrAccountNotFound.Is(err))
	_, err = ctrl.Withdrawals(db, 3)
	assert.True(t, ErrAccountNotFound.Is(err))

	_, err = ctrl.Accounts(db, nil)
	assert.True(t, errors.ErrEmpty.Is(err))

	id := createAccount(t, ctrl, db, jbtest.NewAddress())
	_, err = ctrl.Approvals(db, id, 0)
	assert.True(t, ErrRequestNotFound.Is(err))
	reqs, err := ctrl.Withdrawals(db, id)
	require.NoError(t, err)
	assert.Empty(t, reqs)
}
