package app

import (
	"sync"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

// CommitStore handles loading from a CommitKVStore, maintaining different
// CacheWraps for Deliver and Check, and returning useful state info.
//
// Readers outside of the ABCI connection (for example the HTTP API) read
// the committed state through ReadSnapshot. Commit excludes them while the
// deliver cache is flushed.
type CommitStore struct {
	mu        sync.RWMutex
	committed jointbank.CommitKVStore
	deliver   jointbank.KVCacheWrap
	check     jointbank.KVCacheWrap
}

// NewCommitStore loads the CommitKVStore from disk and sets up the deliver
// and check caches.
func NewCommitStore(store jointbank.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
		check:     store.CacheWrap(),
	}, nil
}

// CommitInfo returns the current height and hash
func (cs *CommitStore) CommitInfo() (jointbank.CommitID, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.committed.LatestVersion()
}

// Commit will flush deliver to the underlying store and commit it
// to disk. It then regenerates new deliver/check caches
func (cs *CommitStore) Commit() (jointbank.CommitID, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	// flush deliver to store and discard check
	if err := cs.deliver.Write(); err != nil {
		return jointbank.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	cs.check.Discard()

	res, err := cs.committed.Commit()
	if err != nil {
		return res, err
	}

	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return res, nil
}

// CheckStore returns a store implementation that must be used during the
// checking phase.
func (cs *CommitStore) CheckStore() jointbank.CacheableKVStore {
	return cs.check
}

// DeliverStore returns a store implementation that must be used during the
// delivery phase.
func (cs *CommitStore) DeliverStore() jointbank.CacheableKVStore {
	return cs.deliver
}

// ReadSnapshot calls fn with a view of the last committed state. The view
// must not be used after fn returns.
func (cs *CommitStore) ReadSnapshot(fn func(jointbank.ReadOnlyKVStore) error) error {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	db := cs.committed.CacheWrap()
	defer db.Discard()
	return fn(db)
}

//------- storing chainID ---------

// _jb: is a prefix for internal application data
const chainIDKey = "_jb:chainID"

// loadChainID returns the chain id stored if any
func loadChainID(kv jointbank.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv jointbank.KVStore, chainID string) error {
	if !jointbank.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chain id")
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
