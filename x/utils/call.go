package utils

import (
	"github.com/iov-one/tokenledger"
)

// Call is a single mutating operation over the store.
type Call func(ctx tokenledger.Context, db tokenledger.CacheableKVStore) error

// Decorator wraps a Call, doing something before or after it.
type Decorator interface {
	Run(ctx tokenledger.Context, db tokenledger.CacheableKVStore, next Call) error
}

// Chain composes decorators, the first one is the outermost.
func Chain(decorators ...Decorator) Stack {
	return Stack(decorators)
}

// Stack is a list of decorators applied in order.
type Stack []Decorator

// Run executes call through all decorators.
func (s Stack) Run(ctx tokenledger.Context, db tokenledger.CacheableKVStore, call Call) error {
	if len(s) == 0 {
		return call(ctx, db)
	}
	next := func(ctx tokenledger.Context, db tokenledger.CacheableKVStore) error {
		return s[1:].Run(ctx, db, call)
	}
	return s[0].Run(ctx, db, next)
}

var defaultStack = Chain(NewLogging(), NewSavepoint(), NewRecovery())

// Run executes a ledger operation as one atomic unit. op names the
// operation and ledger the instance, both are attached to every log line
// emitted during the call.
func Run(ctx tokenledger.Context, db tokenledger.CacheableKVStore, op string, ledger tokenledger.Address, call Call) error {
	ctx = tokenledger.WithLogInfo(ctx, "op", op, "ledger", ledger)
	return defaultStack.Run(ctx, db, call)
}
