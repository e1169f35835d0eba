package orm

import (
	"encoding/binary"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	jointbank.Persistent
	Validate() error
}

// SequenceKey returns the 8 byte big endian representation of an id. Keys
// created this way sort in the same order as the ids.
func SequenceKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// ParseSequenceKey returns the id represented by an 8 byte key.
func ParseSequenceKey(key []byte) (uint64, error) {
	if err := ValidateSequence(key); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(key), nil
}

// ValidateSequence returns an error if this is not an 8-byte value as
// produced by a Sequence.
func ValidateSequence(id []byte) error {
	if len(id) == 0 {
		return errors.Wrap(errors.ErrEmpty, "sequence missing")
	}
	if len(id) != 8 {
		return errors.Wrap(errors.ErrInput, "sequence is invalid length (expect 8 bytes)")
	}
	return nil
}

// dbKey joins prefix and key into a new slice. A new array is always
// allocated so that consecutive calls never share memory.
func dbKey(prefix, key []byte) []byte {
	out := make([]byte, len(prefix)+len(key))
	copy(out, prefix)
	copy(out[len(prefix):], key)
	return out
}

// prefixRange turns a prefix into a (start, end) range. The end is the
// smallest key that does not share the prefix. The end is nil if the
// prefix consists of 0xff bytes only.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if prefix == nil {
		return nil, nil
	}
	start := dbKey(prefix, nil)
	end := dbKey(prefix, nil)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return start, end[:i+1]
		}
	}
	return start, nil
}
