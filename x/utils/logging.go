package utils

import (
	"time"

	"github.com/iov-one/tokenledger"
)

// Logging is a decorator to log calls as they pass through
type Logging struct{}

var _ Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Run logs error -> error, success -> info
func (l Logging) Run(ctx tokenledger.Context, db tokenledger.CacheableKVStore, next Call) error {
	start := time.Now()
	err := next(ctx, db)
	logDuration(ctx, start, "ledger call", err)
	return err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx tokenledger.Context, start time.Time, msg string, err error) {
	delta := time.Since(start)
	logger := tokenledger.GetLogger(ctx).With("duration", delta/time.Microsecond)

	if err != nil {
		logger.Error(msg, "err", err)
	} else {
		logger.Info(msg)
	}
}
