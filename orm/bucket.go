/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets. Each bucket
contains only one kind of value, keyed by a composite of raw byte parts
(for example ledger address followed by token id).

Values are stored raw. Numeric values use the big endian codecs of this
package so that they sort the same way as bytes.Compare.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/errors"
	"github.com/iov-one/tokenledger/store"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Bucket is a prefixed subspace of the DB.
type Bucket struct {
	name   string
	prefix []byte
}

// NewBucket creates a bucket to store data
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// Name returns the bucket name, also used to name its sequences.
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix.
// All parts are concatenated in order.
//
// We copy into a new array rather than use append, as we don't
// want consequetive calls to overwrite the same byte array.
func (b Bucket) DBKey(parts ...[]byte) []byte {
	size := len(b.prefix)
	for _, p := range parts {
		size += len(p)
	}
	out := make([]byte, 0, size)
	out = append(out, b.prefix...)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Get returns the raw value, nil if missing.
func (b Bucket) Get(db tokenledger.ReadOnlyKVStore, parts ...[]byte) ([]byte, error) {
	return db.Get(b.DBKey(parts...))
}

// Has returns true if a value is stored under the key.
func (b Bucket) Has(db tokenledger.ReadOnlyKVStore, parts ...[]byte) (bool, error) {
	return db.Has(b.DBKey(parts...))
}

// Set stores a raw value.
func (b Bucket) Set(db tokenledger.KVStore, value []byte, parts ...[]byte) error {
	if value == nil {
		return errors.Wrap(errors.ErrHuman, "nil value, use Delete")
	}
	return db.Set(b.DBKey(parts...), value)
}

// Delete will remove the value at a key
func (b Bucket) Delete(db tokenledger.KVStore, parts ...[]byte) error {
	return db.Delete(b.DBKey(parts...))
}

// GetUint64 reads a counter. A missing value reads as zero.
func (b Bucket) GetUint64(db tokenledger.ReadOnlyKVStore, parts ...[]byte) (uint64, error) {
	raw, err := b.Get(db, parts...)
	if err != nil {
		return 0, err
	}
	val, err := DecodeUint64(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "key %X", b.DBKey(parts...))
	}
	return val, nil
}

// SetUint64 writes a counter. Zero is never stored, the key is deleted
// instead so that unset and zero are the same state.
func (b Bucket) SetUint64(db tokenledger.KVStore, val uint64, parts ...[]byte) error {
	if val == 0 {
		return b.Delete(db, parts...)
	}
	return b.Set(db, EncodeUint64(val), parts...)
}

// Prefix returns all models whose key (without the bucket prefix) starts
// with the given parts, in ascending key order. Returned keys have the
// bucket prefix stripped.
func (b Bucket) Prefix(db tokenledger.ReadOnlyKVStore, parts ...[]byte) ([]store.Model, error) {
	start := b.DBKey(parts...)
	return b.scan(db, start, prefixEnd(start))
}

// Range returns all models within [start, end) of this bucket. A nil end
// runs until the end of the bucket.
func (b Bucket) Range(db tokenledger.ReadOnlyKVStore, start, end []byte) ([]store.Model, error) {
	from := b.DBKey(start)
	to := prefixEnd(b.prefix)
	if end != nil {
		to = b.DBKey(end)
	}
	return b.scan(db, from, to)
}

func (b Bucket) scan(db tokenledger.ReadOnlyKVStore, start, end []byte) ([]store.Model, error) {
	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []store.Model
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, store.Pair(key[len(b.prefix):], value))
	}
}

// prefixEnd returns the smallest key greater than all keys with the given
// prefix, nil if there is none.
func prefixEnd(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
