package store

import (
	"testing"

	"github.com/iov-one/jointbank/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetSet(t *testing.T) {
	base := MemStore()

	k, v := []byte("french"), []byte("fry")
	assertGetHas(t, base, k, nil, false)
	require.NoError(t, base.Set(k, v))
	assertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	k2, v2 := []byte("food"), []byte("tasty")
	require.NoError(t, cache.Set(k2, v2))
	assertGetHas(t, cache, k, v, true)
	assertGetHas(t, cache, k2, v2, true)
	assertGetHas(t, base, k2, nil, false)

	require.NoError(t, cache.Write())
	assertGetHas(t, base, k2, v2, true)
}

func TestCacheDiscard(t *testing.T) {
	base := MemStore()
	k, v := []byte("account"), []byte("1000")
	require.NoError(t, base.Set(k, v))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set(k, []byte("0")))
	require.NoError(t, cache.Set([]byte("request"), []byte("executed")))
	require.NoError(t, cache.Delete([]byte("account")))
	assertGetHas(t, cache, k, nil, false)
	cache.Discard()

	// Writing a discarded cache must not resurrect dropped operations.
	require.NoError(t, cache.Write())
	assertGetHas(t, base, k, v, true)
	assertGetHas(t, base, []byte("request"), nil, false)
}

func TestNestedDelete(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("a"), []byte("1")))

	outer := base.CacheWrap()
	inner := outer.CacheWrap()
	require.NoError(t, inner.Delete([]byte("a")))
	assertGetHas(t, outer, []byte("a"), []byte("1"), true)
	require.NoError(t, inner.Write())
	assertGetHas(t, outer, []byte("a"), nil, false)
	assertGetHas(t, base, []byte("a"), []byte("1"), true)
	require.NoError(t, outer.Write())
	assertGetHas(t, base, []byte("a"), nil, false)
}

func TestCacheIterator(t *testing.T) {
	base := MemStore()
	for _, k := range []string{"a", "c", "e", "g"} {
		require.NoError(t, base.Set([]byte(k), []byte("base-"+k)))
	}
	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("cache-b")))
	require.NoError(t, cache.Set([]byte("c"), []byte("cache-c")))
	require.NoError(t, cache.Delete([]byte("e")))
	require.NoError(t, cache.Set([]byte("h"), []byte("cache-h")))

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []Model
	}{
		"full range": {
			want: []Model{
				mod("a", "base-a"), mod("b", "cache-b"), mod("c", "cache-c"),
				mod("g", "base-g"), mod("h", "cache-h"),
			},
		},
		"bounded range": {
			start: []byte("b"),
			end:   []byte("g"),
			want:  []Model{mod("b", "cache-b"), mod("c", "cache-c")},
		},
		"open end": {
			start: []byte("f"),
			want:  []Model{mod("g", "base-g"), mod("h", "cache-h")},
		},
		"reverse full range": {
			reverse: true,
			want: []Model{
				mod("h", "cache-h"), mod("g", "base-g"), mod("c", "cache-c"),
				mod("b", "cache-b"), mod("a", "base-a"),
			},
		},
		"reverse bounded range": {
			start:   []byte("a"),
			end:     []byte("c"),
			reverse: true,
			want:    []Model{mod("b", "cache-b"), mod("a", "base-a")},
		},
		"empty range": {
			start: []byte("x"),
			end:   []byte("z"),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = cache.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = cache.Iterator(tc.start, tc.end)
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, consume(t, it))
		})
	}
}

func TestBatchOps(t *testing.T) {
	base := MemStore()
	b := NewNonAtomicBatch(base)
	require.NoError(t, b.Set([]byte("x"), []byte("1")))
	require.NoError(t, b.Delete([]byte("y")))
	assert.Len(t, b.ShowOps(), 2)
	assertGetHas(t, base, []byte("x"), nil, false)

	require.NoError(t, b.Write())
	assert.Empty(t, b.ShowOps())
	assertGetHas(t, base, []byte("x"), []byte("1"), true)
}

func TestNilKey(t *testing.T) {
	base := MemStore()
	err := base.Set(nil, []byte("value"))
	assert.True(t, errors.ErrDatabase.Is(err))
}

func mod(k, v string) Model {
	return Model{Key: []byte(k), Value: []byte(v)}
}

func consume(t testing.TB, it Iterator) []Model {
	t.Helper()
	defer it.Release()

	var res []Model
	for {
		k, v, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res
		}
		require.NoError(t, err)
		res = append(res, Model{Key: k, Value: v})
	}
}

func assertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}
