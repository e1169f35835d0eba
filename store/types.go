package store

import "github.com/iov-one/jointbank"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = jointbank.ReadOnlyKVStore
	SetDeleter       = jointbank.SetDeleter
	KVStore          = jointbank.KVStore
	Batch            = jointbank.Batch
	Iterator         = jointbank.Iterator
	CacheableKVStore = jointbank.CacheableKVStore
	KVCacheWrap      = jointbank.KVCacheWrap
	CommitKVStore    = jointbank.CommitKVStore
	CommitID         = jointbank.CommitID
	Model            = jointbank.Model
)
