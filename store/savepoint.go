package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/tokenledger/errors"
)

// Savepoint keeps the pending writes of a single call on top of a parent
// store. Reads see the pending writes first and fall back to the parent.
//
// Write flushes the net change of every touched key to the parent, in key
// order and through one batch, so a persistent parent commits atomically.
// Discard forgets everything. Savepoints nest: a call wraps the savepoint
// of its caller and failing only drops its own layer.
type Savepoint struct {
	pending *btree.BTree
	parent  ReadOnlyKVStore
	out     Batch
}

var _ KVCacheWrap = (*Savepoint)(nil)

// degree of the pending tree. A call touches few keys.
const degree = 8

// NewSavepoint opens a savepoint reading from parent. All writes reach the
// parent through out on Write.
func NewSavepoint(parent ReadOnlyKVStore, out Batch) *Savepoint {
	return &Savepoint{
		pending: btree.New(degree),
		parent:  parent,
		out:     out,
	}
}

// MemStore returns a store without persistence, for tests and genesis
// validation. Its own Write is a noop.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewSavepoint(e, e.NewBatch())
}

// CacheWrap opens a nested savepoint.
func (s *Savepoint) CacheWrap() KVCacheWrap {
	return NewSavepoint(s, s.NewBatch())
}

// NewBatch returns a batch applied to this savepoint on Write.
func (s *Savepoint) NewBatch() Batch {
	return NewNonAtomicBatch(s)
}

// Write flushes the pending writes to the parent and empties the savepoint.
func (s *Savepoint) Write() error {
	var err error
	s.pending.Ascend(func(item btree.Item) bool {
		e := item.(entry)
		if e.deleted {
			err = s.out.Delete(e.key)
		} else {
			err = s.out.Set(e.key, e.value)
		}
		return err == nil
	})
	if err == nil {
		err = s.out.Write()
	}
	s.Discard()
	return err
}

// Discard drops all pending writes.
func (s *Savepoint) Discard() {
	s.pending = btree.New(degree)
}

// Set records a pending write. Key and value are copied, callers may reuse
// their buffers.
func (s *Savepoint) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	s.pending.ReplaceOrInsert(entry{key: clone(key), value: clone(value)})
	return nil
}

// Delete records a pending removal. It hides the parent value until the
// savepoint is discarded.
func (s *Savepoint) Delete(key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	s.pending.ReplaceOrInsert(entry{key: clone(key), deleted: true})
	return nil
}

func (s *Savepoint) Get(key []byte) ([]byte, error) {
	if e, ok := s.lookup(key); ok {
		if e.deleted {
			return nil, nil
		}
		return e.value, nil
	}
	return s.parent.Get(key)
}

func (s *Savepoint) Has(key []byte) (bool, error) {
	if e, ok := s.lookup(key); ok {
		return !e.deleted, nil
	}
	return s.parent.Has(key)
}

// Iterator walks pending writes and the parent together in ascending order.
func (s *Savepoint) Iterator(start, end []byte) (Iterator, error) {
	back, err := s.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergedIter(pendingRange(s.pending, start, end), back, true)
}

// ReverseIterator is Iterator in descending order.
func (s *Savepoint) ReverseIterator(start, end []byte) (Iterator, error) {
	back, err := s.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	ours := pendingRange(s.pending, start, end)
	for l, r := 0, len(ours)-1; l < r; l, r = l+1, r-1 {
		ours[l], ours[r] = ours[r], ours[l]
	}
	return newMergedIter(ours, back, false)
}

func (s *Savepoint) lookup(key []byte) (entry, bool) {
	item := s.pending.Get(entry{key: key})
	if item == nil {
		return entry{}, false
	}
	return item.(entry), true
}

// entry is a pending write. A deleted entry hides the parent value.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append(make([]byte, 0, len(b)), b...)
}
