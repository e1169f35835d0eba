package orm

import (
	"bytes"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

const indexPrefix = "_i."

// MultiKeyIndexer calculates the secondary index keys for a given model. A
// model can be indexed under any number of keys, including none.
type MultiKeyIndexer func(Model) ([][]byte, error)

// Index is a secondary index of a bucket. All primary keys indexed under
// the same value are stored together as a MultiRef, sorted by the primary
// key.
type Index struct {
	name   string
	prefix []byte
	unique bool
	index  MultiKeyIndexer
}

func newIndex(bucket, name string, indexer MultiKeyIndexer, unique bool) Index {
	return Index{
		name:   name,
		prefix: []byte(indexPrefix + bucket + "_" + name + ":"),
		unique: unique,
		index:  indexer,
	}
}

// Name returns the name of this index.
func (i Index) Name() string {
	return i.name
}

// Keys returns the primary keys of all entities that were indexed under
// given value, sorted ascending.
func (i Index) Keys(db jointbank.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	refs, err := i.load(db, value)
	if err != nil {
		return nil, err
	}
	return refs.Refs, nil
}

func (i Index) load(db jointbank.ReadOnlyKVStore, value []byte) (*MultiRef, error) {
	raw, err := db.Get(dbKey(i.prefix, value))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	var refs MultiRef
	if raw == nil {
		return &refs, nil
	}
	if err := refs.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "index %s: %s", i.name, err)
	}
	return &refs, nil
}

func (i Index) save(db jointbank.KVStore, value []byte, refs *MultiRef) error {
	key := dbKey(i.prefix, value)
	if len(refs.Refs) == 0 {
		return db.Delete(key)
	}
	raw, err := refs.Marshal()
	if err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return db.Set(key, raw)
}

// update moves the primary key between index values. A nil prev means an
// insert, a nil next means a delete.
func (i Index) update(db jointbank.KVStore, pk []byte, prev, next Model) error {
	if prev == nil && next == nil {
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil model")
	}
	var before, after [][]byte
	if prev != nil {
		keys, err := i.index(prev)
		if err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
		before = keys
	}
	if next != nil {
		keys, err := i.index(next)
		if err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
		after = keys
	}

	for _, value := range before {
		if contains(after, value) {
			continue
		}
		refs, err := i.load(db, value)
		if err != nil {
			return err
		}
		if err := refs.Remove(pk); err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
		if err := i.save(db, value, refs); err != nil {
			return err
		}
	}
	for _, value := range after {
		if contains(before, value) {
			continue
		}
		refs, err := i.load(db, value)
		if err != nil {
			return err
		}
		if i.unique && len(refs.Refs) > 0 {
			return errors.Wrapf(ErrUniqueConstraint, "index %s", i.name)
		}
		if err := refs.Add(pk); err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
		if err := i.save(db, value, refs); err != nil {
			return err
		}
	}
	return nil
}

func contains(set [][]byte, value []byte) bool {
	for _, v := range set {
		if bytes.Equal(v, value) {
			return true
		}
	}
	return false
}
