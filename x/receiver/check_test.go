package receiver_test

import (
	"testing"

	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/errors"
	"github.com/iov-one/tokenledger/ledgertest"
	"github.com/iov-one/tokenledger/ledgertest/assert"
	"github.com/iov-one/tokenledger/store"
	"github.com/iov-one/tokenledger/x/receiver"
)

func TestAcceptanceChecks(t *testing.T) {
	ledger := ledgertest.NewAddress()
	operator := ledgertest.NewAddress()
	from := ledgertest.NewAddress()
	plain := ledgertest.NewAddress()

	cases := map[string]struct {
		// contract deployed at the destination, nil for a plain account
		contract func() interface{}
		wantErr  *errors.Error
		// number of callback invocations expected per check
		wantCalls int
	}{
		"plain account accepts": {
			contract: nil,
		},
		"accepting receiver": {
			contract:  func() interface{} { return &ledgertest.Receiver{} },
			wantCalls: 1,
		},
		"contract without callback": {
			contract: func() interface{} { return ledgertest.NonReceiver{} },
			wantErr:  errors.ErrUnsafeRecipient,
		},
		"rejecting receiver": {
			contract:  func() interface{} { return ledgertest.Rejecting() },
			wantErr:   errors.ErrUnsafeRecipient,
			wantCalls: 1,
		},
		"wrong acknowledgment": {
			contract:  func() interface{} { return ledgertest.WrongAck() },
			wantErr:   errors.ErrUnsafeRecipient,
			wantCalls: 1,
		},
		"panicking receiver": {
			contract:  func() interface{} { return ledgertest.Panicking() },
			wantErr:   errors.ErrUnsafeRecipient,
			wantCalls: 1,
		},
	}

	checks := map[string]func(tokenledger.Context, tokenledger.CacheableKVStore, tokenledger.Host, receiver.Transfer) error{
		"nft": func(ctx tokenledger.Context, db tokenledger.CacheableKVStore, h tokenledger.Host, tr receiver.Transfer) error {
			return receiver.CheckNFTReceived(ctx, db, h, tr, 7)
		},
		"multi token": func(ctx tokenledger.Context, db tokenledger.CacheableKVStore, h tokenledger.Host, tr receiver.Transfer) error {
			return receiver.CheckMultiTokenReceived(ctx, db, h, tr, 7, 100)
		},
		"multi token batch": func(ctx tokenledger.Context, db tokenledger.CacheableKVStore, h tokenledger.Host, tr receiver.Transfer) error {
			return receiver.CheckMultiTokenBatchReceived(ctx, db, h, tr, []uint64{1, 2}, []uint64{10, 20})
		},
	}

	for testName, tc := range cases {
		for checkName, check := range checks {
			t.Run(testName+"/"+checkName, func(t *testing.T) {
				host := receiver.NewRegistry()
				to := plain
				var contract interface{}
				if tc.contract != nil {
					contract = tc.contract()
					to = host.Deploy(ledgertest.NewCondition(), contract)
				}
				tr := receiver.Transfer{
					Ledger:   ledger,
					Operator: operator,
					From:     from,
					To:       to,
					Data:     []byte("hello"),
				}
				err := check(ledgertest.Ctx(operator), store.MemStore(), host, tr)
				assert.IsErr(t, tc.wantErr, err)

				r, ok := contract.(*ledgertest.Receiver)
				if !ok {
					return
				}
				assert.Equal(t, tc.wantCalls, len(r.Calls))
				if len(r.Calls) > 0 {
					call := r.Calls[0]
					// the receiver calls on its own behalf
					assert.Equal(t, to, call.Caller)
					assert.Equal(t, ledger, call.Ledger)
					assert.Equal(t, operator, call.Operator)
					assert.Equal(t, from, call.From)
					assert.Equal(t, []byte("hello"), call.Data)
					assert.Equal(t, checkName == "multi token batch", call.Batch)
				}
			})
		}
	}
}

func TestNilHost(t *testing.T) {
	tr := receiver.Transfer{
		Ledger: ledgertest.NewAddress(),
		To:     ledgertest.NewAddress(),
	}
	err := receiver.CheckNFTReceived(ledgertest.Ctx(tr.Ledger), store.MemStore(), nil, tr, 1)
	assert.Nil(t, err)
}

func TestRegistry(t *testing.T) {
	host := receiver.NewRegistry()
	cond := ledgertest.NewCondition()
	contract := &ledgertest.Receiver{}

	addr := host.Deploy(cond, contract)
	assert.Equal(t, cond.Address(), addr)

	got, ok := host.ContractAt(addr)
	assert.True(t, ok, "deployed")
	assert.Equal(t, contract, got)

	host.Register(addr, nil)
	_, ok = host.ContractAt(addr)
	assert.True(t, !ok, "removed")
}
