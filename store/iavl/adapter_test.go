package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitAndReload(t *testing.T) {
	dir, err := ioutil.TempDir("", "iavl-adapter-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	commit, err := NewCommitStore(dir, "ledger")
	require.NoError(t, err)
	require.NoError(t, commit.LoadLatestVersion())

	cache := commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("account:1"), []byte("1000")))
	require.NoError(t, cache.Set([]byte("account:2"), []byte("50")))

	// Nothing is visible until the cache is written and committed.
	got, err := commit.Get([]byte("account:1"))
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, cache.Write())
	id, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)

	got, err = commit.Get([]byte("account:1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1000"), got)

	latest, err := commit.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, id, latest)
}

func TestDiscardedCacheIsNotCommitted(t *testing.T) {
	commit := NewMemCommitStore()
	require.NoError(t, commit.LoadLatestVersion())

	cache := commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("request"), []byte("executed")))
	cache.Discard()
	require.NoError(t, cache.Write())

	_, err := commit.Commit()
	require.NoError(t, err)
	got, err := commit.Get([]byte("request"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAdapterIterator(t *testing.T) {
	commit := NewMemCommitStore()
	require.NoError(t, commit.LoadLatestVersion())

	kv := commit.Adapter()
	for _, k := range []string{"a", "b", "c", "d"} {
		require.NoError(t, kv.Set([]byte(k), []byte(k)))
	}
	require.NoError(t, kv.Delete([]byte("c")))

	it, err := kv.Iterator([]byte("a"), []byte("d"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys(t, it))

	it, err = kv.ReverseIterator(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "b", "a"}, keys(t, it))

	// Cache wraps combine their own writes with the tree content.
	cache := kv.CacheWrap()
	require.NoError(t, cache.Set([]byte("c"), []byte("again")))
	it, err = cache.Iterator(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, keys(t, it))
}

func TestLatestVersion(t *testing.T) {
	commit := NewMemCommitStore()
	require.NoError(t, commit.LoadLatestVersion())

	for i := 0; i < 3; i++ {
		cache := commit.CacheWrap()
		require.NoError(t, cache.Set([]byte{byte(i)}, []byte("v")))
		require.NoError(t, cache.Write())
		_, err := commit.Commit()
		require.NoError(t, err)
	}
	id, err := commit.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(3), id.Version)
}

func keys(t testing.TB, it store.Iterator) []string {
	t.Helper()
	defer it.Release()
	var res []string
	for {
		k, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res
		}
		require.NoError(t, err)
		res = append(res, string(k))
	}
}
