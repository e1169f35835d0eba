package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/jointbank/errors"
)

// DefaultFreeListSize is the size we hold for free node in btree
const DefaultFreeListSize = btree.DefaultFreeListSize

const btreeDegree = 2

// MemStore returns a store that keeps all data in memory. There is no
// persistence here. Writing a MemStore is a no-op, all data stays in the
// tree.
func MemStore() CacheableKVStore {
	return NewBTreeCacheWrap(EmptyKVStore{}, nopBatch{}, nil)
}

// BTreeCacheable adds a btree-based CacheWrap strategy to any KVStore.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a BTreeCacheWrap that can be later written to this
// store, or rolled back.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// BTreeCacheWrap places a btree cache over a store. Reads consult the cache
// before the backing store, writes go to the cache and to the batch.
type BTreeCacheWrap struct {
	tree  *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = (*BTreeCacheWrap)(nil)

// NewBTreeCacheWrap initializes a BTree to cache around this kv store. Use
// ReadOnlyKVStore to emphasize that all writes must go through the Batch.
//
// free may be nil, but set to an existing list to reuse it for memory
// savings.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) *BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return &BTreeCacheWrap{
		tree:  btree.NewWithFreeList(btreeDegree, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

// CacheWrap layers another BTree on top of this one.
func (b *BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

// NewBatch returns a non-atomic batch that eventually may write to this
// cache wrap.
func (b *BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes all buffered operations to the underlying store and clears
// the cache.
func (b *BTreeCacheWrap) Write() error {
	if err := b.batch.Write(); err != nil {
		return errors.Wrap(err, "write batch")
	}
	b.clear()
	return nil
}

// Discard drops all buffered operations. The underlying store is left
// untouched.
func (b *BTreeCacheWrap) Discard() {
	if r, ok := b.batch.(resetter); ok {
		r.Reset()
	}
	b.clear()
}

// clear moves all btree nodes back to the free list.
func (b *BTreeCacheWrap) clear() {
	for b.tree.DeleteMin() != nil {
	}
}

// Set writes to the BTree and to the batch.
func (b *BTreeCacheWrap) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	b.tree.ReplaceOrInsert(entry{key: key, value: value})
	return b.batch.Set(key, value)
}

// Delete marks the key as removed in the BTree and records it in the
// batch.
func (b *BTreeCacheWrap) Delete(key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	b.tree.ReplaceOrInsert(entry{key: key, deleted: true})
	return b.batch.Delete(key)
}

// Get reads from btree if there, else backing store.
func (b *BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if res := b.tree.Get(entry{key: key}); res != nil {
		e := res.(entry)
		if e.deleted {
			return nil, nil
		}
		return e.value, nil
	}
	return b.back.Get(key)
}

// Has reads from btree if there, else backing store.
func (b *BTreeCacheWrap) Has(key []byte) (bool, error) {
	if res := b.tree.Get(entry{key: key}); res != nil {
		return !res.(entry).deleted, nil
	}
	return b.back.Has(key)
}

// Iterator returns all keys from the [start, end) range in ascending order.
// A nil start or end means the range is not bounded on that side. Results
// of the btree and the backing store are combined.
func (b *BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(collect(b.tree, start, end), parent, true), nil
}

// ReverseIterator returns all keys from the [start, end) range in
// descending order. Results of the btree and the backing store are
// combined.
func (b *BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	cached := collect(b.tree, start, end)
	for i, j := 0, len(cached)-1; i < j; i, j = i+1, j-1 {
		cached[i], cached[j] = cached[j], cached[i]
	}
	return newMergeIterator(cached, parent, false), nil
}

// collect returns all entries from the [start, end) range in ascending
// order. Deleted entries are included so that they can shadow the backing
// store.
func collect(tree *btree.BTree, start, end []byte) []entry {
	var res []entry
	add := func(i btree.Item) bool {
		res = append(res, i.(entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		tree.Ascend(add)
	case start == nil:
		tree.AscendLessThan(entry{key: end}, add)
	case end == nil:
		tree.AscendGreaterOrEqual(entry{key: start}, add)
	default:
		tree.AscendRange(entry{key: start}, entry{key: end}, add)
	}
	return res
}

// entry is a single cached operation. A deleted entry hides any value of
// the backing store.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = entry{}

// Less implements btree.Item.
func (e entry) Less(other btree.Item) bool {
	return bytes.Compare(e.key, other.(entry).key) < 0
}
