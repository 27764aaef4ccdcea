package receiver

import (
	"fmt"

	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/errors"
)

// Transfer describes a completed transfer, as seen by the acceptance check.
type Transfer struct {
	// Ledger is the address of the ledger that moved the tokens. The
	// callback reads it with LedgerOf.
	Ledger   tokenledger.Address
	Operator tokenledger.Address
	From     tokenledger.Address
	To       tokenledger.Address
	Data     []byte
}

// CheckNFTReceived runs the acceptance protocol for a single non-fungible
// token. Nil is returned when t.To is a plain account or accepted.
func CheckNFTReceived(ctx tokenledger.Context, db tokenledger.CacheableKVStore, host tokenledger.Host, t Transfer, tokenID uint64) error {
	contract, ok := tokenledger.ContractAt(host, t.To)
	if !ok {
		return nil
	}
	r, ok := contract.(NFTReceiver)
	if !ok {
		return errors.Wrapf(errors.ErrUnsafeRecipient, "%s does not accept non-fungible tokens", t.To)
	}
	return verify(ctx, t, NFTReceivedAck, func(ctx tokenledger.Context) (Ack, error) {
		return r.OnNFTReceived(ctx, db, t.Operator, t.From, tokenID, t.Data)
	})
}

// CheckMultiTokenReceived runs the acceptance protocol for a single
// multi-token transfer.
func CheckMultiTokenReceived(ctx tokenledger.Context, db tokenledger.CacheableKVStore, host tokenledger.Host, t Transfer, id, amount uint64) error {
	r, err := multiTokenReceiver(host, t.To)
	if r == nil || err != nil {
		return err
	}
	return verify(ctx, t, MultiTokenReceivedAck, func(ctx tokenledger.Context) (Ack, error) {
		return r.OnMultiTokenReceived(ctx, db, t.Operator, t.From, id, amount, t.Data)
	})
}

// CheckMultiTokenBatchReceived runs the acceptance protocol for a batch
// multi-token transfer.
func CheckMultiTokenBatchReceived(ctx tokenledger.Context, db tokenledger.CacheableKVStore, host tokenledger.Host, t Transfer, ids, amounts []uint64) error {
	r, err := multiTokenReceiver(host, t.To)
	if r == nil || err != nil {
		return err
	}
	return verify(ctx, t, MultiTokenBatchReceivedAck, func(ctx tokenledger.Context) (Ack, error) {
		return r.OnMultiTokenBatchReceived(ctx, db, t.Operator, t.From, ids, amounts, t.Data)
	})
}

// multiTokenReceiver returns nil without an error for plain accounts.
func multiTokenReceiver(host tokenledger.Host, to tokenledger.Address) (MultiTokenReceiver, error) {
	contract, ok := tokenledger.ContractAt(host, to)
	if !ok {
		return nil, nil
	}
	r, ok := contract.(MultiTokenReceiver)
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnsafeRecipient, "%s does not accept multi tokens", to)
	}
	return r, nil
}

// verify invokes the callback and checks the answer. The receiver contract
// is the caller of anything it does from within the callback, so a reentrant
// call is authorized as the receiver and never as the ledger.
func verify(ctx tokenledger.Context, t Transfer, want Ack, callback func(tokenledger.Context) (Ack, error)) error {
	ctx = tokenledger.WithCaller(ctx, t.To)
	ctx = withLedger(ctx, t.Ledger)
	ctx = tokenledger.WithLogInfo(ctx, "receiver", t.To)

	got, err := invoke(ctx, callback)
	if err != nil {
		tokenledger.GetLogger(ctx).Debug("receiver rejected", "err", err)
		return errors.Wrap(errors.ErrUnsafeRecipient, fmt.Sprintf("receiver %s: %s", t.To, err))
	}
	if got != want {
		return errors.Wrapf(errors.ErrUnsafeRecipient, "receiver %s answered %s, want %s", t.To, got, want)
	}
	return nil
}

func invoke(ctx tokenledger.Context, callback func(tokenledger.Context) (Ack, error)) (ack Ack, err error) {
	defer errors.Recover(&err)
	return callback(ctx)
}
