package orm

import (
	"encoding/binary"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

const seqPrefix = "_s."

// Sequence maintains a counter and returns a fresh value on every call. The
// first value is 0 and no value is ever returned twice.
type Sequence struct {
	id []byte
}

// NewSequence creates a sequence object. The bucket name and the sequence
// name together must be unique.
func NewSequence(bucket, name string) Sequence {
	return Sequence{id: []byte(seqPrefix + bucket + ":" + name)}
}

// NextVal returns the next value of the sequence and increments the
// stored counter.
func (s Sequence) NextVal(db jointbank.KVStore) (uint64, error) {
	next, err := s.peek(db)
	if err != nil {
		return 0, err
	}
	if next == ^uint64(0) {
		return 0, errors.Wrap(errors.ErrOverflow, "sequence exhausted")
	}
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, next+1)
	if err := db.Set(s.id, raw); err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return next, nil
}

// NextID returns the next value of the sequence encoded as a key.
func (s Sequence) NextID(db jointbank.KVStore) ([]byte, error) {
	val, err := s.NextVal(db)
	if err != nil {
		return nil, err
	}
	return SequenceKey(val), nil
}

// Count returns the number of values handed out so far.
func (s Sequence) Count(db jointbank.ReadOnlyKVStore) (uint64, error) {
	return s.peek(db)
}

func (s Sequence) peek(db jointbank.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return 0, nil
	}
	if len(raw) != 8 {
		return 0, errors.Wrapf(errors.ErrModel, "invalid sequence value %X", raw)
	}
	return binary.BigEndian.Uint64(raw), nil
}
