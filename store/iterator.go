package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/tokenledger/errors"
)

// pendingRange returns the pending entries within [start, end) in ascending
// order. A nil bound is open.
func pendingRange(bt *btree.BTree, start, end []byte) []entry {
	var res []entry
	collect := func(item btree.Item) bool {
		res = append(res, item.(entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(entry{key: end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(entry{key: start}, collect)
	default:
		bt.AscendRange(entry{key: start}, entry{key: end}, collect)
	}
	return res
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
)

// mergedIter joins the pending entries with those of the parent,
// taking into consideration overwrites and deletes.
//
// Pending entries are snapshotted when the iterator is created, the parent is
// consumed lazily with a single item lookahead.
type mergedIter struct {
	ours      []entry
	idx       int
	ascending bool

	parent     Iterator
	parentKey  []byte
	parentVal  []byte
	parentOpen bool
}

var _ Iterator = (*mergedIter)(nil)

func newMergedIter(ours []entry, parent Iterator, ascending bool) (*mergedIter, error) {
	iter := &mergedIter{
		ours:       ours,
		ascending:  ascending,
		parent:     parent,
		parentOpen: true,
	}
	if err := iter.advanceParent(); err != nil {
		parent.Release()
		return nil, err
	}
	return iter, nil
}

func (i *mergedIter) advanceParent() error {
	key, value, err := i.parent.Next()
	switch {
	case errors.ErrIteratorDone.Is(err):
		i.parentOpen = false
		i.parentKey, i.parentVal = nil, nil
		return nil
	case err != nil:
		return err
	}
	i.parentKey, i.parentVal = key, value
	return nil
}

// Next returns the next visible key value pair. Deleted entries of this
// layer hide the parent's value for the same key.
func (i *mergedIter) Next() (key, value []byte, err error) {
	for {
		src, ok := i.firstKey()
		if !ok {
			return nil, nil, errors.Wrap(errors.ErrIteratorDone, "savepoint iterator")
		}

		switch src {
		case parent:
			key, value = i.parentKey, i.parentVal
			if err := i.advanceParent(); err != nil {
				return nil, nil, err
			}
			return key, value, nil
		case both:
			// our entry overrides the parent
			if err := i.advanceParent(); err != nil {
				return nil, nil, err
			}
		}

		e := i.ours[i.idx]
		i.idx++
		if !e.deleted {
			return e.key, e.value, nil
		}
	}
}

// firstKey selects the source holding the next key in iteration order.
func (i *mergedIter) firstKey() (source, bool) {
	usValid := i.idx < len(i.ours)
	switch {
	case !usValid && !i.parentOpen:
		return 0, false
	case !usValid:
		return parent, true
	case !i.parentOpen:
		return us, true
	}

	cmp := bytes.Compare(i.parentKey, i.ours[i.idx].key)
	if !i.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent, true
	case cmp > 0:
		return us, true
	default:
		return both, true
	}
}

// Release releases the Iterator.
func (i *mergedIter) Release() {
	i.parent.Release()
	i.ours = nil
}
