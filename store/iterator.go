package store

import (
	"bytes"

	"github.com/iov-one/jointbank/errors"
)

// mergeIterator combines cached entries with an iterator of the backing
// store. When both contain the same key the cached entry wins. Deleted
// cached entries hide the parent value and are never returned.
type mergeIterator struct {
	cached    []entry
	parent    Iterator
	ascending bool

	// Look ahead of the parent iterator.
	pkey, pvalue []byte
	pdone        bool
	pread        bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cached []entry, parent Iterator, ascending bool) *mergeIterator {
	return &mergeIterator{
		cached:    cached,
		parent:    parent,
		ascending: ascending,
	}
}

// Next implements Iterator.
func (it *mergeIterator) Next() (key, value []byte, err error) {
	for {
		if err := it.peekParent(); err != nil {
			return nil, nil, err
		}

		switch {
		case len(it.cached) == 0 && it.pdone:
			return nil, nil, errors.ErrIteratorDone
		case len(it.cached) == 0:
			return it.takeParent()
		case it.pdone:
			e := it.takeCached()
			if e.deleted {
				continue
			}
			return e.key, e.value, nil
		}

		cmp := bytes.Compare(it.cached[0].key, it.pkey)
		if !it.ascending {
			cmp = -cmp
		}
		switch {
		case cmp > 0:
			return it.takeParent()
		case cmp == 0:
			// Cached entry overwrites the parent value.
			it.pread = false
		}
		e := it.takeCached()
		if e.deleted {
			continue
		}
		return e.key, e.value, nil
	}
}

func (it *mergeIterator) peekParent() error {
	if it.pread || it.pdone {
		return nil
	}
	k, v, err := it.parent.Next()
	switch {
	case errors.ErrIteratorDone.Is(err):
		it.pdone = true
		return nil
	case err != nil:
		return err
	}
	it.pkey, it.pvalue, it.pread = k, v, true
	return nil
}

func (it *mergeIterator) takeParent() ([]byte, []byte, error) {
	it.pread = false
	return it.pkey, it.pvalue, nil
}

func (it *mergeIterator) takeCached() entry {
	e := it.cached[0]
	it.cached = it.cached[1:]
	return e
}

// Release implements Iterator.
func (it *mergeIterator) Release() {
	it.parent.Release()
	it.cached = nil
}

// SliceIterator iterates over a preloaded list of models.
type SliceIterator struct {
	data []Model
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator creates a new Iterator over this slice. Models are
// returned in the order they are given.
func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{data: data}
}

// Next implements Iterator.
func (s *SliceIterator) Next() (key, value []byte, err error) {
	if len(s.data) == 0 {
		return nil, nil, errors.ErrIteratorDone
	}
	m := s.data[0]
	s.data = s.data[1:]
	return m.Key, m.Value, nil
}

// Release implements Iterator.
func (s *SliceIterator) Release() {
	s.data = nil
}
