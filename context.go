package tokenledger

import (
	"context"

	"github.com/iov-one/tokenledger/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Context is the call context. The caller identity and the logger travel
// through it.
//
// There exist two functions for every XYZ of type T that we support in
// Context:
//
//	WithXYZ(Context, T) Context
//	GetXYZ(Context) (val T, ok bool)
type Context = context.Context

type contextKey int // local to the tokenledger package

const (
	contextKeyCaller contextKey = iota
	contextKeyLogger
)

// DefaultLogger is used for all context that have not
// set anything themselves
var DefaultLogger = log.NewNopLogger()

// WithCaller sets the account that issues the call. Unlike a block height,
// the caller may be replaced, a ledger does that before it hands control to
// a receiver contract.
func WithCaller(ctx Context, caller Address) Context {
	return context.WithValue(ctx, contextKeyCaller, caller.Clone())
}

// GetCaller returns who issued the current call.
func GetCaller(ctx Context) (Address, bool) {
	val, ok := ctx.Value(contextKeyCaller).(Address)
	return val, ok
}

// WithLogger sets the logger for this context
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// CallerOf returns the caller of the current call. A call without a caller,
// or with the zero address as caller, is unauthorized.
func CallerOf(ctx Context) (Address, error) {
	caller, ok := GetCaller(ctx)
	if !ok || caller.IsZero() {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no caller")
	}
	return caller, nil
}
