package receiver

import (
	"context"

	"github.com/iov-one/tokenledger"
)

type contextKey int

const contextKeyLedger contextKey = iota

func withLedger(ctx tokenledger.Context, ledger tokenledger.Address) tokenledger.Context {
	return context.WithValue(ctx, contextKeyLedger, ledger.Clone())
}

// LedgerOf returns the address of the ledger that invoked the current
// callback. It is set only while a callback runs.
func LedgerOf(ctx tokenledger.Context) (tokenledger.Address, bool) {
	val, ok := ctx.Value(contextKeyLedger).(tokenledger.Address)
	return val, ok
}

// NFTReceiver is implemented by contracts that accept non-fungible tokens
// through a safe transfer. The context caller is the receiver itself, the
// sending ledger is available through LedgerOf.
type NFTReceiver interface {
	OnNFTReceived(ctx tokenledger.Context, db tokenledger.CacheableKVStore,
		operator, from tokenledger.Address, tokenID uint64, data []byte) (Ack, error)
}

// MultiTokenReceiver is implemented by contracts that accept multi-token
// transfers. Callers are set as for NFTReceiver.
type MultiTokenReceiver interface {
	OnMultiTokenReceived(ctx tokenledger.Context, db tokenledger.CacheableKVStore,
		operator, from tokenledger.Address, id, amount uint64, data []byte) (Ack, error)

	OnMultiTokenBatchReceived(ctx tokenledger.Context, db tokenledger.CacheableKVStore,
		operator, from tokenledger.Address, ids, amounts []uint64, data []byte) (Ack, error)
}
