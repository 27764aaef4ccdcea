package ledgertest

import (
	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/errors"
	"github.com/iov-one/tokenledger/x/receiver"
)

// Received records a single callback invocation.
type Received struct {
	Caller   tokenledger.Address
	Ledger   tokenledger.Address
	Operator tokenledger.Address
	From     tokenledger.Address
	IDs      []uint64
	Amounts  []uint64
	Data     []byte
	Batch    bool
}

// Receiver is a configurable mock contract implementing both
// receiver.NFTReceiver and receiver.MultiTokenReceiver.
//
// By default it accepts everything and records every call. Set Err to
// reject, Ack to answer a custom (usually wrong) value, Panic to blow up, or
// Hook to run code (such as a reentrant ledger call) before answering.
type Receiver struct {
	Err   error
	Ack   *receiver.Ack
	Panic bool
	Hook  func(ctx tokenledger.Context, db tokenledger.CacheableKVStore) error

	Calls []Received
}

var (
	_ receiver.NFTReceiver        = (*Receiver)(nil)
	_ receiver.MultiTokenReceiver = (*Receiver)(nil)
)

// Rejecting returns a receiver failing every callback with
// errors.ErrUnauthorized.
func Rejecting() *Receiver {
	return &Receiver{Err: errors.Wrap(errors.ErrUnauthorized, "not accepting tokens")}
}

// WrongAck returns a receiver answering every callback with a zero value.
func WrongAck() *Receiver {
	return &Receiver{Ack: &receiver.Ack{}}
}

// Panicking returns a receiver panicking in every callback.
func Panicking() *Receiver {
	return &Receiver{Panic: true}
}

func (r *Receiver) OnNFTReceived(ctx tokenledger.Context, db tokenledger.CacheableKVStore,
	operator, from tokenledger.Address, tokenID uint64, data []byte) (receiver.Ack, error) {
	r.record(ctx, Received{Operator: operator, From: from, IDs: []uint64{tokenID}, Data: data})
	return r.answer(ctx, db, receiver.NFTReceivedAck)
}

func (r *Receiver) OnMultiTokenReceived(ctx tokenledger.Context, db tokenledger.CacheableKVStore,
	operator, from tokenledger.Address, id, amount uint64, data []byte) (receiver.Ack, error) {
	r.record(ctx, Received{Operator: operator, From: from, IDs: []uint64{id}, Amounts: []uint64{amount}, Data: data})
	return r.answer(ctx, db, receiver.MultiTokenReceivedAck)
}

func (r *Receiver) OnMultiTokenBatchReceived(ctx tokenledger.Context, db tokenledger.CacheableKVStore,
	operator, from tokenledger.Address, ids, amounts []uint64, data []byte) (receiver.Ack, error) {
	r.record(ctx, Received{Operator: operator, From: from, IDs: ids, Amounts: amounts, Data: data, Batch: true})
	return r.answer(ctx, db, receiver.MultiTokenBatchReceivedAck)
}

func (r *Receiver) record(ctx tokenledger.Context, rec Received) {
	rec.Caller, _ = tokenledger.GetCaller(ctx)
	rec.Ledger, _ = receiver.LedgerOf(ctx)
	r.Calls = append(r.Calls, rec)
}

func (r *Receiver) answer(ctx tokenledger.Context, db tokenledger.CacheableKVStore, ack receiver.Ack) (receiver.Ack, error) {
	if r.Panic {
		panic("receiver panic")
	}
	if r.Hook != nil {
		if err := r.Hook(ctx, db); err != nil {
			return receiver.Ack{}, err
		}
	}
	if r.Err != nil {
		return receiver.Ack{}, r.Err
	}
	if r.Ack != nil {
		return *r.Ack, nil
	}
	return ack, nil
}

// NonReceiver is a contract that implements no callback at all.
type NonReceiver struct{}
