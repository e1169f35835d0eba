package bankaccount

import (
	"context"
	"sync"
	"time"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Ledger serializes all mutations of the accounts stored in a database.
//
// Every mutation runs in its own cache wrap. The wrap is written only if
// the whole operation, value transfer included, succeeded. Notifications
// are sent once the state was written, in the order of the mutations.
// Queries may run concurrently with each other and never observe a
// partially applied mutation.
type Ledger struct {
	View

	mu       sync.RWMutex
	db       jointbank.CacheableKVStore
	ctrl     *Controller
	notifier jointbank.Notifier
	logger   log.Logger
	now      func() time.Time
}

// LedgerOption configures a Ledger.
type LedgerOption func(*Ledger)

// WithNotifier sets the sink receiving the events of all mutations.
func WithNotifier(n jointbank.Notifier) LedgerOption {
	return func(l *Ledger) { l.notifier = n }
}

// WithLogger sets the logger used to report mutations.
func WithLogger(logger log.Logger) LedgerOption {
	return func(l *Ledger) { l.logger = logger }
}

// WithClock overwrites the time source used to timestamp mutations.
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) { l.now = now }
}

// NewLedger returns a ledger keeping its state in db and transferring
// value through vault.
func NewLedger(db jointbank.CacheableKVStore, vault Vault, opts ...LedgerOption) *Ledger {
	l := &Ledger{
		db:       db,
		ctrl:     NewController(vault),
		notifier: jointbank.NopNotifier{},
		logger:   log.NewNopLogger(),
		now:      time.Now,
	}
	for _, fn := range opts {
		fn(l)
	}
	l.View = NewView(l)
	return l
}

// ReadSnapshot implements Snapshotter.
func (l *Ledger) ReadSnapshot(fn func(db jointbank.ReadOnlyKVStore) error) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return fn(l.db)
}

// CreateAccount opens an account owned by caller and owners and returns
// its id.
func (l *Ledger) CreateAccount(ctx context.Context, caller jointbank.Address, owners []jointbank.Address) (uint64, error) {
	var id uint64
	err := l.mutate(ctx, "create", func(db jointbank.KVStore, now time.Time) (jointbank.Event, error) {
		ev, err := l.ctrl.CreateAccount(db, caller, owners, now)
		if err != nil {
			return nil, err
		}
		id = ev.AccountID
		return ev, nil
	})
	return id, err
}

// Deposit moves amount from the caller to the account.
func (l *Ledger) Deposit(ctx context.Context, caller jointbank.Address, accountID, amount uint64) error {
	return l.mutate(ctx, "deposit", func(db jointbank.KVStore, now time.Time) (jointbank.Event, error) {
		ev, err := l.ctrl.Deposit(db, caller, accountID, amount, now)
		if err != nil {
			return nil, err
		}
		return ev, nil
	})
}

// RequestWithdraw proposes a withdrawal and returns the request id.
func (l *Ledger) RequestWithdraw(ctx context.Context, caller jointbank.Address, accountID, amount uint64) (uint64, error) {
	var wid uint64
	err := l.mutate(ctx, "request", func(db jointbank.KVStore, now time.Time) (jointbank.Event, error) {
		ev, err := l.ctrl.RequestWithdraw(db, caller, accountID, amount, now)
		if err != nil {
			return nil, err
		}
		wid = ev.WithdrawID
		return ev, nil
	})
	return wid, err
}

// ApproveWithdraw approves a pending request on behalf of the caller.
func (l *Ledger) ApproveWithdraw(ctx context.Context, caller jointbank.Address, accountID, withdrawID uint64) error {
	return l.mutate(ctx, "approve", func(db jointbank.KVStore, now time.Time) (jointbank.Event, error) {
		ev, err := l.ctrl.ApproveWithdraw(db, caller, accountID, withdrawID, now)
		if err != nil {
			return nil, err
		}
		return ev, nil
	})
}

// Withdraw executes an approved request.
func (l *Ledger) Withdraw(ctx context.Context, caller jointbank.Address, accountID, withdrawID uint64) error {
	return l.mutate(ctx, "withdraw", func(db jointbank.KVStore, now time.Time) (jointbank.Event, error) {
		ev, err := l.ctrl.Withdraw(db, caller, accountID, withdrawID, now)
		if err != nil {
			return nil, err
		}
		return ev, nil
	})
}

// mutate runs fn in a savepoint holding the writer lock. The callbacks
// return the concrete event type through an interface, so a nil event
// must never be returned together with a nil error.
func (l *Ledger) mutate(ctx context.Context, op string, fn func(jointbank.KVStore, time.Time) (jointbank.Event, error)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	logger := l.logger.With("op", op)
	now := l.now().UTC()

	cache := l.db.CacheWrap()
	ev, err := fn(cache, now)
	if err != nil {
		cache.Discard()
		logger.Debug("mutation rejected", "err", err)
		return err
	}
	if err := cache.Write(); err != nil {
		cache.Discard()
		logger.Error("cannot write savepoint", "err", err)
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	logger.Info("mutation applied", "event", ev.EventName())
	l.notifier.Notify(ctx, ev)
	return nil
}
