package utils

import (
	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/errors"
)

// Recovery is a decorator to recover from panics in calls,
// so we can log them as errors
type Recovery struct{}

var _ Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Run turns panics into normal errors
func (r Recovery) Run(ctx tokenledger.Context, db tokenledger.CacheableKVStore, next Call) (err error) {
	defer errors.Recover(&err)
	return next(ctx, db)
}
