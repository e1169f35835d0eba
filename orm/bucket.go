package orm

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString

// ModelBucket is a prefixed subspace of the DB that stores models of a
// single type.
type ModelBucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	seq     Sequence
	indexes []Index
}

// BucketOption configures a ModelBucket.
type BucketOption func(*ModelBucket)

// WithIndex adds a secondary index to the bucket. Unique indexes may
// reference at most one entity per value.
func WithIndex(name string, indexer MultiKeyIndexer, unique bool) BucketOption {
	return func(b *ModelBucket) {
		if !isBucketName(name) {
			panic(fmt.Sprintf("illegal index name: %q", name))
		}
		for _, idx := range b.indexes {
			if idx.name == name {
				panic(fmt.Sprintf("index %q registered twice", name))
			}
		}
		b.indexes = append(b.indexes, newIndex(b.name, name, indexer, unique))
	}
}

// WithIDSequence overwrites the sequence used to generate primary keys for
// models saved without a key.
func WithIDSequence(s Sequence) BucketOption {
	return func(b *ModelBucket) {
		b.seq = s
	}
}

// NewModelBucket creates a bucket that stores models of the same type as
// proto. proto must be a pointer.
func NewModelBucket(name string, proto Model, opts ...BucketOption) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket: %q", name))
	}
	t := reflect.TypeOf(proto)
	if t.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("bucket %q model must be a pointer, got %T", name, proto))
	}
	b := ModelBucket{
		name:   name,
		prefix: []byte(name + ":"),
		model:  t,
		seq:    NewSequence(name, "id"),
	}
	for _, fn := range opts {
		fn(&b)
	}
	return b
}

// Name returns the bucket name.
func (b ModelBucket) Name() string {
	return b.name
}

// Sequence returns the sequence used to generate primary keys.
func (b ModelBucket) Sequence() Sequence {
	return b.seq
}

// DBKey is the full key we store in the db, including prefix
func (b ModelBucket) DBKey(key []byte) []byte {
	return dbKey(b.prefix, key)
}

// One queries the database for a single model instance. Lookup is done by
// the primary key. Result is loaded into given destination model.
// ErrNotFound is returned if the entity does not exist in the database.
func (b ModelBucket) One(db jointbank.ReadOnlyKVStore, key []byte, dest Model) error {
	if err := b.checkType(dest); err != nil {
		return err
	}
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrModel, "%s %X: %s", b.name, key, err)
	}
	return nil
}

// Has returns nil if an entity with given primary key exists and
// ErrNotFound otherwise.
func (b ModelBucket) Has(db jointbank.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	return nil
}

// Put saves given model in the database. If key is nil, the next value of
// the bucket sequence is used. The primary key under which the model was
// stored is returned.
func (b ModelBucket) Put(db jointbank.KVStore, key []byte, m Model) ([]byte, error) {
	if err := b.checkType(m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}
	if key == nil {
		id, err := b.seq.NextID(db)
		if err != nil {
			return nil, errors.Wrap(err, "next id")
		}
		key = id
	}
	raw, err := m.Marshal()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "marshal: %s", err)
	}
	if err := b.updateIndexes(db, key, m); err != nil {
		return nil, err
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return key, nil
}

// Delete removes an entity with given primary key from the database. It
// returns ErrNotFound if an entity with given key does not exist.
func (b ModelBucket) Delete(db jointbank.KVStore, key []byte) error {
	if err := b.Has(db, key); err != nil {
		return err
	}
	if err := b.updateIndexes(db, key, nil); err != nil {
		return err
	}
	if err := db.Delete(b.DBKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (b ModelBucket) updateIndexes(db jointbank.KVStore, key []byte, next Model) error {
	if len(b.indexes) == 0 {
		return nil
	}
	var prev Model
	switch old, err := b.load(db, key); {
	case err == nil:
		prev = old
	case !errors.ErrNotFound.Is(err):
		return err
	}
	if prev == nil && next == nil {
		return nil
	}
	for _, idx := range b.indexes {
		if err := idx.update(db, key, prev, next); err != nil {
			return err
		}
	}
	return nil
}

// load returns a fresh model instance with the stored entity.
func (b ModelBucket) load(db jointbank.ReadOnlyKVStore, key []byte) (Model, error) {
	m := reflect.New(b.model.Elem()).Interface().(Model)
	if err := b.One(db, key, m); err != nil {
		return nil, err
	}
	return m, nil
}

// IndexKeys returns the primary keys of all entities indexed under given
// value, sorted ascending.
func (b ModelBucket) IndexKeys(db jointbank.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, error) {
	idx, err := b.index(indexName)
	if err != nil {
		return nil, err
	}
	return idx.Keys(db, value)
}

// ByIndex loads all entities indexed under given value into destination,
// which must be a pointer to a slice of the bucket model type. Primary keys
// are returned in the same order as the loaded entities.
func (b ModelBucket) ByIndex(db jointbank.ReadOnlyKVStore, indexName string, value []byte, destination interface{}) ([][]byte, error) {
	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrapf(errors.ErrType, "destination must be a pointer to a slice, got %T", destination)
	}
	slice := dest.Elem()
	elem := slice.Type().Elem()
	if elem != b.model && elem != b.model.Elem() {
		return nil, errors.Wrapf(errors.ErrType, "%s cannot be loaded into %T", b.model, destination)
	}

	keys, err := b.IndexKeys(db, indexName, value)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		m, err := b.load(db, key)
		if err != nil {
			return nil, errors.Wrapf(err, "index %s reference", indexName)
		}
		v := reflect.ValueOf(m)
		if elem.Kind() != reflect.Ptr {
			v = v.Elem()
		}
		slice = reflect.Append(slice, v)
	}
	dest.Elem().Set(slice)
	return keys, nil
}

func (b ModelBucket) index(name string) (Index, error) {
	for _, idx := range b.indexes {
		if idx.name == name {
			return idx, nil
		}
	}
	return Index{}, errors.Wrapf(ErrInvalidIndex, "bucket %s has no index %q", b.name, name)
}

func (b ModelBucket) checkType(m Model) error {
	if reflect.TypeOf(m) != b.model {
		return errors.Wrapf(errors.ErrType, "bucket %s stores %s, got %T", b.name, b.model, m)
	}
	return nil
}

// PrefixScan returns an iterator over all entities whose primary key
// starts with prefix. A nil prefix iterates over the whole bucket.
func (b ModelBucket) PrefixScan(db jointbank.ReadOnlyKVStore, prefix []byte, reverse bool) (*ModelIterator, error) {
	start, end := prefixRange(b.DBKey(prefix))
	var (
		it  jointbank.Iterator
		err error
	)
	if reverse {
		it, err = db.ReverseIterator(start, end)
	} else {
		it, err = db.Iterator(start, end)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return &ModelIterator{it: it, prefix: b.prefix}, nil
}

// ModelIterator returns models loaded from a bucket.
type ModelIterator struct {
	it     jointbank.Iterator
	prefix []byte
}

// Next loads the next entity into dest and returns its primary key.
// errors.ErrIteratorDone is returned when there are no more entities.
func (m *ModelIterator) Next(dest Model) ([]byte, error) {
	key, raw, err := m.it.Next()
	if err != nil {
		return nil, err
	}
	if err := dest.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "%X: %s", key, err)
	}
	return key[len(m.prefix):], nil
}

// Release releases the underlying store iterator.
func (m *ModelIterator) Release() {
	m.it.Release()
}
