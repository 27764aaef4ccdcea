package utils

import (
	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/errors"
)

// Savepoint will isolate all data inside of the call,
// and commit/rollback to savepoint based on if error
type Savepoint struct{}

var _ Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// Run calls next with a cache wrap of db.
func (s Savepoint) Run(ctx tokenledger.Context, db tokenledger.CacheableKVStore, next Call) error {
	cache := db.CacheWrap()
	if err := next(ctx, cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
