package orm

import (
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

// Register registers this bucket and all its indexes under given query
// router. You can define a name here for queries, which is different than
// the bucket name used to prefix the data.
func (b ModelBucket) Register(name string, r jointbank.QueryRouter) {
	if name == "" {
		name = b.name
	}
	root := "/" + name
	r.Register(root, b)
	for _, idx := range b.indexes {
		r.Register(root+"/"+idx.name, indexQuery{bucket: b, index: idx})
	}
}

// Query handles queries from the QueryRouter. Returned model keys are the
// primary keys, without the bucket prefix.
func (b ModelBucket) Query(db jointbank.ReadOnlyKVStore, mod string, data []byte) ([]jointbank.Model, error) {
	switch mod {
	case jointbank.KeyQueryMod:
		raw, err := db.Get(b.DBKey(data))
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		if raw == nil {
			return nil, nil
		}
		return []jointbank.Model{jointbank.Pair(data, raw)}, nil
	case jointbank.PrefixQueryMod:
		start, end := prefixRange(b.DBKey(data))
		it, err := db.Iterator(start, end)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		defer it.Release()

		var res []jointbank.Model
		for {
			key, raw, err := it.Next()
			switch {
			case errors.ErrIteratorDone.Is(err):
				return res, nil
			case err != nil:
				return nil, err
			}
			res = append(res, jointbank.Pair(key[len(b.prefix):], raw))
		}
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
}

// indexQuery returns entities referenced by an index value.
type indexQuery struct {
	bucket ModelBucket
	index  Index
}

// Query handles queries from the QueryRouter. Only the key mod is
// supported.
func (q indexQuery) Query(db jointbank.ReadOnlyKVStore, mod string, data []byte) ([]jointbank.Model, error) {
	if mod != jointbank.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
	keys, err := q.index.Keys(db, data)
	if err != nil {
		return nil, err
	}
	res := make([]jointbank.Model, 0, len(keys))
	for _, key := range keys {
		raw, err := db.Get(q.bucket.DBKey(key))
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		if raw == nil {
			return nil, errors.Wrapf(errors.ErrNotFound, "index %s reference %X", q.index.name, key)
		}
		res = append(res, jointbank.Pair(key, raw))
	}
	return res, nil
}
