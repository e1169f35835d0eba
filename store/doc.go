/*
Package store provides the in-memory storage building blocks of the ledger.

A BTreeCacheWrap buffers writes on top of any ReadOnlyKVStore. Nothing
reaches the underlying store until Write is called, and Discard drops all
buffered writes. Cache wraps can be stacked, which is how savepoints are
implemented: every transaction runs in its own wrap and only a successful
transaction is written to the block wrap below it.
*/
package store
