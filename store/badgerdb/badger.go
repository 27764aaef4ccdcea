/*
Package badgerdb provides a persistent KVStore backed by Badger, for hosts
that keep ledger state on disk between calls (such as tokenctl).

Reads go straight to the database. Writes issued on the store are
committed one by one, while batches and cache wraps commit all their
operations in a single Badger transaction.
*/
package badgerdb

import (
	"bytes"

	"github.com/dgraph-io/badger/v3"
	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/errors"
	"github.com/iov-one/tokenledger/store"
)

// BadgerStore is a tokenledger.CacheableKVStore over a Badger database.
type BadgerStore struct {
	db *badger.DB
}

var _ tokenledger.CacheableKVStore = (*BadgerStore)(nil)

// OpenBadger opens (or creates) a database stored in the given directory.
func OpenBadger(path string) (*BadgerStore, error) {
	return open(badger.DefaultOptions(path))
}

// OpenInMemory opens a database that never touches the disk.
func OpenInMemory() (*BadgerStore, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*BadgerStore, error) {
	db, err := badger.Open(opts.WithLogger(nil))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return &BadgerStore{db: db}, nil
}

// Close releases the database.
func (bs *BadgerStore) Close() error {
	return bs.db.Close()
}

// Badger gives access to the underlying database.
func (bs *BadgerStore) Badger() *badger.DB {
	return bs.db
}

// Get returns nil if the key does not exist.
func (bs *BadgerStore) Get(key []byte) ([]byte, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return val, nil
}

func (bs *BadgerStore) Has(key []byte) (bool, error) {
	val, err := bs.Get(key)
	return val != nil, err
}

func (bs *BadgerStore) Set(key, value []byte) error {
	return bs.update(store.SetOp(key, value))
}

func (bs *BadgerStore) Delete(key []byte) error {
	return bs.update(store.DelOp(key))
}

// update applies all ops within one transaction.
func (bs *BadgerStore) update(ops ...store.Op) error {
	err := bs.db.Update(func(txn *badger.Txn) error {
		for _, op := range ops {
			var err error
			if op.IsSetOp() {
				err = txn.Set(op.Key(), op.Value())
			} else {
				err = txn.Delete(op.Key())
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Iterator over [start, end) in ascending order. The range is read into
// memory when the iterator is created.
func (bs *BadgerStore) Iterator(start, end []byte) (tokenledger.Iterator, error) {
	return bs.iterate(start, end, false)
}

// ReverseIterator over [start, end) in descending order.
func (bs *BadgerStore) ReverseIterator(start, end []byte) (tokenledger.Iterator, error) {
	return bs.iterate(start, end, true)
}

func (bs *BadgerStore) iterate(start, end []byte, reverse bool) (tokenledger.Iterator, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	opts := badger.DefaultIteratorOptions
	opts.Reverse = reverse
	it := txn.NewIterator(opts)
	defer it.Close()

	switch {
	case !reverse && start != nil:
		it.Seek(start)
	case reverse && end != nil:
		it.Seek(end)
	default:
		it.Rewind()
	}

	var models []store.Model
	for ; it.Valid(); it.Next() {
		item := it.Item()
		key := item.KeyCopy(nil)
		if !reverse && end != nil && bytes.Compare(key, end) >= 0 {
			break
		}
		if reverse {
			// reverse seek lands on end itself when it exists
			if end != nil && bytes.Compare(key, end) >= 0 {
				continue
			}
			if start != nil && bytes.Compare(key, start) < 0 {
				break
			}
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		models = append(models, store.Pair(key, val))
	}
	return store.NewSliceIterator(models), nil
}

// NewBatch returns a batch committed in one transaction on Write.
func (bs *BadgerStore) NewBatch() tokenledger.Batch {
	return &batch{bs: bs}
}

// CacheWrap places a btree savepoint over the database. Its Write commits
// atomically.
func (bs *BadgerStore) CacheWrap() tokenledger.KVCacheWrap {
	return store.NewSavepoint(bs, bs.NewBatch())
}

type batch struct {
	bs  *BadgerStore
	ops []store.Op
}

func (b *batch) Set(key, value []byte) error {
	b.ops = append(b.ops, store.SetOp(key, value))
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.ops = append(b.ops, store.DelOp(key))
	return nil
}

func (b *batch) Write() error {
	if len(b.ops) == 0 {
		return nil
	}
	err := b.bs.update(b.ops...)
	b.ops = nil
	return err
}
