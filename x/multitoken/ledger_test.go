package multitoken_test

import (
	"testing"

	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/errors"
	"github.com/iov-one/tokenledger/ledgertest"
	"github.com/iov-one/tokenledger/ledgertest/assert"
	"github.com/iov-one/tokenledger/store"
	"github.com/iov-one/tokenledger/x/multitoken"
	"github.com/iov-one/tokenledger/x/receiver"
)

func newLedger(host tokenledger.Host) *multitoken.Ledger {
	conf := multitoken.Configuration{Name: "items", URI: "https://items.example/{id}.json"}
	return multitoken.NewLedger(conf, host)
}

func balances(t testing.TB, l *multitoken.Ledger, db tokenledger.ReadOnlyKVStore, account tokenledger.Address, ids ...uint64) []uint64 {
	t.Helper()
	accounts := make([]tokenledger.Address, len(ids))
	for i := range accounts {
		accounts[i] = account
	}
	res, err := l.BalanceOfBatch(db, accounts, ids)
	assert.Nil(t, err)
	return res
}

func TestMintBatchAndBalanceOfBatch(t *testing.T) {
	alice := ledgertest.NewAddress()
	db := store.MemStore()
	l := newLedger(nil)
	ctx := ledgertest.Ctx(alice)

	assert.Nil(t, l.MintBatch(ctx, db, alice, []uint64{1, 2}, []uint64{10, 20}, nil))

	got, err := l.BalanceOfBatch(db, []tokenledger.Address{alice, alice}, []uint64{1, 2})
	assert.Nil(t, err)
	assert.Equal(t, []uint64{10, 20}, got)

	_, err = l.BalanceOfBatch(db, []tokenledger.Address{alice}, []uint64{1, 2})
	assert.IsErr(t, multitoken.ErrNotEqualNumberIdsAndAccounts, err)
	_, err = l.BalanceOfBatch(db, []tokenledger.Address{alice, nil}, []uint64{1, 2})
	assert.IsErr(t, errors.ErrZeroAddress, err)
}

func TestMint(t *testing.T) {
	alice := ledgertest.NewAddress()
	db := store.MemStore()
	l := newLedger(nil)
	ctx := ledgertest.Ctx(alice)

	assert.Nil(t, l.Mint(ctx, db, alice, 1, 5, nil))
	assert.Nil(t, l.Mint(ctx, db, alice, 1, 5, nil))
	assert.Equal(t, []uint64{10, 0}, balances(t, l, db, alice, 1, 2))

	assert.IsErr(t, errors.ErrZeroAddress, l.Mint(ctx, db, nil, 1, 5, nil))
	assert.IsErr(t, errors.ErrZeroAddress, l.MintBatch(ctx, db, nil, []uint64{1}, []uint64{5}, nil))
	assert.IsErr(t, multitoken.ErrNotEqualNumberIdsAndAmounts, l.MintBatch(ctx, db, alice, []uint64{1, 2}, []uint64{5}, nil))

	const max = ^uint64(0)
	assert.IsErr(t, errors.ErrOverflow, l.MintBatch(ctx, db, alice, []uint64{2, 1}, []uint64{7, max}, nil))
	assert.Equal(t, []uint64{10, 0}, balances(t, l, db, alice, 1, 2))

	_, err := l.BalanceOf(db, nil, 1)
	assert.IsErr(t, errors.ErrZeroAddress, err)
}

func TestBurn(t *testing.T) {
	alice := ledgertest.NewAddress()

	cases := map[string]struct {
		from    tokenledger.Address
		ids     []uint64
		amounts []uint64
		wantErr *errors.Error
		want    []uint64
	}{
		"burn part": {
			from:    alice,
			ids:     []uint64{1},
			amounts: []uint64{4},
			want:    []uint64{6, 20},
		},
		"burn everything": {
			from:    alice,
			ids:     []uint64{1, 2},
			amounts: []uint64{10, 20},
			want:    []uint64{0, 0},
		},
		"more than held": {
			from:    alice,
			ids:     []uint64{1},
			amounts: []uint64{11},
			wantErr: multitoken.ErrFromBalanceLessThanAmount,
			want:    []uint64{10, 20},
		},
		"failing pair after a valid one": {
			from:    alice,
			ids:     []uint64{2, 1},
			amounts: []uint64{20, 11},
			wantErr: multitoken.ErrFromBalanceLessThanAmount,
			want:    []uint64{10, 20},
		},
		"repeated ids use the running balance": {
			from:    alice,
			ids:     []uint64{1, 1},
			amounts: []uint64{6, 6},
			wantErr: multitoken.ErrFromBalanceLessThanAmount,
			want:    []uint64{10, 20},
		},
		"repeated ids within balance": {
			from:    alice,
			ids:     []uint64{1, 1},
			amounts: []uint64{5, 5},
			want:    []uint64{0, 20},
		},
		"length mismatch": {
			from:    alice,
			ids:     []uint64{1, 2},
			amounts: []uint64{1},
			wantErr: multitoken.ErrNotEqualNumberIdsAndAmounts,
			want:    []uint64{10, 20},
		},
		"zero account": {
			from:    nil,
			ids:     []uint64{1},
			amounts: []uint64{1},
			wantErr: errors.ErrZeroAddress,
			want:    []uint64{10, 20},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			l := newLedger(nil)
			ctx := ledgertest.Ctx(alice)
			assert.Nil(t, l.MintBatch(ctx, db, alice, []uint64{1, 2}, []uint64{10, 20}, nil))

			err := l.BurnBatch(ctx, db, tc.from, tc.ids, tc.amounts)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.want, balances(t, l, db, alice, 1, 2))
		})
	}
}

func TestBurnSingle(t *testing.T) {
	alice := ledgertest.NewAddress()
	db := store.MemStore()
	l := newLedger(nil)
	ctx := ledgertest.Ctx(alice)

	assert.Nil(t, l.Mint(ctx, db, alice, 1, 10, nil))
	assert.IsErr(t, multitoken.ErrFromBalanceLessThanAmount, l.Burn(ctx, db, alice, 1, 11))
	assert.IsErr(t, errors.ErrZeroAddress, l.Burn(ctx, db, nil, 1, 1))
	assert.Nil(t, l.Burn(ctx, db, alice, 1, 4))
	assert.Equal(t, []uint64{6}, balances(t, l, db, alice, 1))

	// burning is not authenticated, any caller may burn alice's balance
	stranger := ledgertest.Ctx(ledgertest.NewAddress())
	assert.Nil(t, l.Burn(stranger, db, alice, 1, 6))
	assert.Equal(t, []uint64{0}, balances(t, l, db, alice, 1))
}

func TestSetApprovalForAll(t *testing.T) {
	alice := ledgertest.NewAddress()
	bob := ledgertest.NewAddress()
	db := store.MemStore()
	l := newLedger(nil)
	ctx := ledgertest.Ctx(alice)

	assert.IsErr(t, multitoken.ErrSenderEqualsOperator, l.SetApprovalForAll(ctx, db, alice, true))
	assert.IsErr(t, errors.ErrZeroAddress, l.SetApprovalForAll(ctx, db, nil, true))
	assert.IsErr(t, errors.ErrUnauthorized, l.SetApprovalForAll(ledgertest.Ctx(nil), db, bob, true))

	assert.Nil(t, l.SetApprovalForAll(ctx, db, bob, true))
	ok, err := l.IsApprovedForAll(db, alice, bob)
	assert.Nil(t, err)
	assert.Equal(t, true, ok)

	assert.Nil(t, l.SetApprovalForAll(ctx, db, bob, false))
	ok, err = l.IsApprovedForAll(db, alice, bob)
	assert.Nil(t, err)
	assert.Equal(t, false, ok)
}

func TestSafeBatchTransferFrom(t *testing.T) {
	alice := ledgertest.NewAddress()
	bob := ledgertest.NewAddress()
	operator := ledgertest.NewAddress()
	stranger := ledgertest.NewAddress()

	cases := map[string]struct {
		caller    tokenledger.Address
		from      tokenledger.Address
		to        tokenledger.Address
		ids       []uint64
		amounts   []uint64
		wantErr   *errors.Error
		wantAlice []uint64
		wantBob   []uint64
	}{
		"owner transfers": {
			caller:    alice,
			from:      alice,
			to:        bob,
			ids:       []uint64{1, 2},
			amounts:   []uint64{3, 20},
			wantAlice: []uint64{7, 0},
			wantBob:   []uint64{3, 20},
		},
		"operator transfers": {
			caller:    operator,
			from:      alice,
			to:        bob,
			ids:       []uint64{2},
			amounts:   []uint64{5},
			wantAlice: []uint64{10, 15},
			wantBob:   []uint64{0, 5},
		},
		"transfer to self": {
			caller:    alice,
			from:      alice,
			to:        alice,
			ids:       []uint64{1},
			amounts:   []uint64{10},
			wantAlice: []uint64{10, 20},
			wantBob:   []uint64{0, 0},
		},
		"stranger": {
			caller:    stranger,
			from:      alice,
			to:        bob,
			ids:       []uint64{1},
			amounts:   []uint64{1},
			wantErr:   multitoken.ErrSenderNotEqualsFrom,
			wantAlice: []uint64{10, 20},
			wantBob:   []uint64{0, 0},
		},
		"authorization is checked before the recipient": {
			caller:    stranger,
			from:      alice,
			to:        nil,
			ids:       []uint64{1},
			amounts:   []uint64{1, 2},
			wantErr:   multitoken.ErrSenderNotEqualsFrom,
			wantAlice: []uint64{10, 20},
			wantBob:   []uint64{0, 0},
		},
		"zero recipient is checked before lengths": {
			caller:    alice,
			from:      alice,
			to:        nil,
			ids:       []uint64{1},
			amounts:   []uint64{1, 2},
			wantErr:   errors.ErrZeroAddress,
			wantAlice: []uint64{10, 20},
			wantBob:   []uint64{0, 0},
		},
		"length mismatch": {
			caller:    alice,
			from:      alice,
			to:        bob,
			ids:       []uint64{1},
			amounts:   []uint64{1, 2},
			wantErr:   multitoken.ErrNotEqualNumberIdsAndAmounts,
			wantAlice: []uint64{10, 20},
			wantBob:   []uint64{0, 0},
		},
		"last pair insufficient": {
			caller:    alice,
			from:      alice,
			to:        bob,
			ids:       []uint64{1, 2},
			amounts:   []uint64{10, 21},
			wantErr:   multitoken.ErrFromBalanceLessThanAmount,
			wantAlice: []uint64{10, 20},
			wantBob:   []uint64{0, 0},
		},
		"no caller": {
			caller:    nil,
			from:      alice,
			to:        bob,
			ids:       []uint64{1},
			amounts:   []uint64{1},
			wantErr:   errors.ErrUnauthorized,
			wantAlice: []uint64{10, 20},
			wantBob:   []uint64{0, 0},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			l := newLedger(nil)
			actx := ledgertest.Ctx(alice)
			assert.Nil(t, l.MintBatch(actx, db, alice, []uint64{1, 2}, []uint64{10, 20}, nil))
			assert.Nil(t, l.SetApprovalForAll(actx, db, operator, true))

			err := l.SafeBatchTransferFrom(ledgertest.Ctx(tc.caller), db, tc.from, tc.to, tc.ids, tc.amounts, nil)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.wantAlice, balances(t, l, db, alice, 1, 2))
			assert.Equal(t, tc.wantBob, balances(t, l, db, bob, 1, 2))
		})
	}
}

func TestSafeTransferFrom(t *testing.T) {
	alice := ledgertest.NewAddress()
	bob := ledgertest.NewAddress()
	db := store.MemStore()
	l := newLedger(nil)
	ctx := ledgertest.Ctx(alice)
	assert.Nil(t, l.Mint(ctx, db, alice, 1, 10, nil))

	assert.Nil(t, l.SafeTransferFrom(ctx, db, alice, bob, 1, 4, nil))
	assert.Equal(t, []uint64{6}, balances(t, l, db, alice, 1))
	assert.Equal(t, []uint64{4}, balances(t, l, db, bob, 1))

	err := l.SafeTransferFrom(ledgertest.Ctx(bob), db, alice, bob, 1, 1, nil)
	assert.IsErr(t, multitoken.ErrSenderNotEqualsFrom, err)
	err = l.SafeTransferFrom(ctx, db, alice, bob, 1, 7, nil)
	assert.IsErr(t, multitoken.ErrFromBalanceLessThanAmount, err)
	err = l.SafeTransferFrom(ctx, db, alice, nil, 1, 1, nil)
	assert.IsErr(t, errors.ErrZeroAddress, err)

	assert.Equal(t, []uint64{6}, balances(t, l, db, alice, 1))
	assert.Equal(t, []uint64{4}, balances(t, l, db, bob, 1))
}

func TestReceiverGating(t *testing.T) {
	alice := ledgertest.NewAddress()
	data := []byte("payload")

	cases := map[string]struct {
		contract func() interface{}
		wantErr  *errors.Error
	}{
		"plain account": {},
		"accepting receiver": {
			contract: func() interface{} { return &ledgertest.Receiver{} },
		},
		"reverting receiver": {
			contract: func() interface{} { return ledgertest.Rejecting() },
			wantErr:  errors.ErrUnsafeRecipient,
		},
		"panicking receiver": {
			contract: func() interface{} { return ledgertest.Panicking() },
			wantErr:  errors.ErrUnsafeRecipient,
		},
		"wrong acknowledgment": {
			contract: func() interface{} { return ledgertest.WrongAck() },
			wantErr:  errors.ErrUnsafeRecipient,
		},
		"non-fungible acknowledgment": {
			contract: func() interface{} {
				ack := receiver.NFTReceivedAck
				return &ledgertest.Receiver{Ack: &ack}
			},
			wantErr: errors.ErrUnsafeRecipient,
		},
		"contract without callback": {
			contract: func() interface{} { return ledgertest.NonReceiver{} },
			wantErr:  errors.ErrUnsafeRecipient,
		},
	}

	transfers := map[string]func(l *multitoken.Ledger, ctx tokenledger.Context, db tokenledger.CacheableKVStore, to tokenledger.Address) error{
		"single": func(l *multitoken.Ledger, ctx tokenledger.Context, db tokenledger.CacheableKVStore, to tokenledger.Address) error {
			return l.SafeTransferFrom(ctx, db, alice, to, 1, 10, data)
		},
		"batch": func(l *multitoken.Ledger, ctx tokenledger.Context, db tokenledger.CacheableKVStore, to tokenledger.Address) error {
			return l.SafeBatchTransferFrom(ctx, db, alice, to, []uint64{1, 2}, []uint64{10, 20}, data)
		},
	}

	for testName, tc := range cases {
		for kind, transfer := range transfers {
			t.Run(testName+" "+kind, func(t *testing.T) {
				db := store.MemStore()
				reg := receiver.NewRegistry()
				l := newLedger(reg)
				ctx := ledgertest.Ctx(alice)
				assert.Nil(t, l.MintBatch(ctx, db, alice, []uint64{1, 2}, []uint64{10, 20}, nil))
				before, err := l.Events(db, 0)
				assert.Nil(t, err)

				to := ledgertest.NewAddress()
				var contract interface{}
				if tc.contract != nil {
					contract = tc.contract()
					to = reg.Deploy(ledgertest.NewCondition(), contract)
				}

				err = transfer(l, ctx, db, to)
				assert.IsErr(t, tc.wantErr, err)

				if tc.wantErr != nil {
					assert.Equal(t, []uint64{10, 20}, balances(t, l, db, alice, 1, 2))
					assert.Equal(t, []uint64{0, 0}, balances(t, l, db, to, 1, 2))
					after, err := l.Events(db, 0)
					assert.Nil(t, err)
					assert.Equal(t, len(before), len(after))
					return
				}
				assert.Equal(t, []uint64{0}, balances(t, l, db, alice, 1))
				assert.Equal(t, []uint64{10}, balances(t, l, db, to, 1))

				if r, ok := contract.(*ledgertest.Receiver); ok {
					assert.Equal(t, 1, len(r.Calls))
					call := r.Calls[0]
					assert.Equal(t, kind == "batch", call.Batch)
					assert.True(t, call.Caller.Equals(to), "receiver is the caller")
					assert.True(t, call.Ledger.Equals(l.Address()), "ledger is known")
					assert.True(t, call.Operator.Equals(alice), "operator")
					assert.Equal(t, data, call.Data)
				}
			})
		}
	}
}

func TestMintSkipsReceiverCheck(t *testing.T) {
	alice := ledgertest.NewAddress()
	db := store.MemStore()
	reg := receiver.NewRegistry()
	l := newLedger(reg)

	to := reg.Deploy(ledgertest.NewCondition(), ledgertest.NonReceiver{})
	assert.Nil(t, l.Mint(ledgertest.Ctx(alice), db, to, 1, 5, nil))
	assert.Equal(t, []uint64{5}, balances(t, l, db, to, 1))
}

func TestReentrantReceiver(t *testing.T) {
	alice := ledgertest.NewAddress()
	db := store.MemStore()
	reg := receiver.NewRegistry()
	l := newLedger(reg)
	ctx := ledgertest.Ctx(alice)
	assert.Nil(t, l.Mint(ctx, db, alice, 1, 10, nil))

	var seen uint64
	r := &ledgertest.Receiver{}
	to := reg.Deploy(ledgertest.NewCondition(), r)
	r.Hook = func(ctx tokenledger.Context, db tokenledger.CacheableKVStore) error {
		bal, err := l.BalanceOf(db, to, 1)
		seen = bal
		return err
	}

	assert.Nil(t, l.SafeTransferFrom(ctx, db, alice, to, 1, 4, nil))
	assert.Equal(t, uint64(4), seen)

	// the callback spends what it just received, then rejects
	r.Hook = func(ctx tokenledger.Context, db tokenledger.CacheableKVStore) error {
		return l.Burn(ctx, db, to, 1, 8)
	}
	r.Err = errors.ErrUnauthorized
	err := l.SafeTransferFrom(ctx, db, alice, to, 1, 4, nil)
	assert.IsErr(t, errors.ErrUnsafeRecipient, err)
	assert.Equal(t, []uint64{6}, balances(t, l, db, alice, 1))
	assert.Equal(t, []uint64{4}, balances(t, l, db, to, 1))
}

func TestReentrantReceiverAuthority(t *testing.T) {
	alice := ledgertest.NewAddress()
	bob := ledgertest.NewAddress()
	db := store.MemStore()
	reg := receiver.NewRegistry()
	l := newLedger(reg)
	ctx := ledgertest.Ctx(alice)
	assert.Nil(t, l.Mint(ctx, db, alice, 1, 10, nil))
	// held by the ledger address itself
	assert.Nil(t, l.Mint(ctx, db, l.Address(), 1, 5, nil))

	var (
		self       tokenledger.Address
		seenCaller tokenledger.Address
		forwardErr error
		takeErr    error
	)
	r := &ledgertest.Receiver{
		Hook: func(ctx tokenledger.Context, db tokenledger.CacheableKVStore) error {
			seenCaller, _ = tokenledger.GetCaller(ctx)
			takeErr = l.SafeTransferFrom(ctx, db, l.Address(), self, 1, 5, nil)
			forwardErr = l.SafeBatchTransferFrom(ctx, db, self, bob, []uint64{1}, []uint64{3}, nil)
			return l.SetApprovalForAll(ctx, db, bob, true)
		},
	}
	self = reg.Deploy(ledgertest.NewCondition(), r)

	assert.Nil(t, l.SafeTransferFrom(ctx, db, alice, self, 1, 4, nil))
	assert.True(t, seenCaller.Equals(self), "callback runs as the receiver")

	// the receiver may move what it was just handed
	assert.Nil(t, forwardErr)
	assert.Equal(t, []uint64{1}, balances(t, l, db, self, 1))
	assert.Equal(t, []uint64{3}, balances(t, l, db, bob, 1))
	assert.Equal(t, []uint64{6}, balances(t, l, db, alice, 1))

	// but holds no authority over the balance of the ledger
	assert.IsErr(t, multitoken.ErrSenderNotEqualsFrom, takeErr)
	assert.Equal(t, []uint64{5}, balances(t, l, db, l.Address(), 1))

	approved, err := l.IsApprovedForAll(db, self, bob)
	assert.Nil(t, err)
	assert.True(t, approved, "receiver approved bob")
	approved, err = l.IsApprovedForAll(db, l.Address(), bob)
	assert.Nil(t, err)
	assert.True(t, !approved, "ledger approved nobody")
}

func TestAcceptanceChecks(t *testing.T) {
	alice := ledgertest.NewAddress()
	db := store.MemStore()
	reg := receiver.NewRegistry()
	l := newLedger(reg)
	ctx := ledgertest.Ctx(alice)

	good := reg.Deploy(ledgertest.NewCondition(), &ledgertest.Receiver{})
	bad := reg.Deploy(ledgertest.NewCondition(), ledgertest.WrongAck())

	assert.Nil(t, l.DoSafeTransferAcceptanceCheck(ctx, db, alice, alice, good, 1, 1, nil))
	assert.Nil(t, l.DoSafeBatchTransferAcceptanceCheck(ctx, db, alice, alice, good, []uint64{1}, []uint64{1}, nil))
	assert.IsErr(t, errors.ErrUnsafeRecipient, l.DoSafeTransferAcceptanceCheck(ctx, db, alice, alice, bad, 1, 1, nil))
	assert.IsErr(t, errors.ErrUnsafeRecipient, l.DoSafeBatchTransferAcceptanceCheck(ctx, db, alice, alice, bad, []uint64{1}, []uint64{1}, nil))
}

func TestEvents(t *testing.T) {
	alice := ledgertest.NewAddress()
	bob := ledgertest.NewAddress()
	db := store.MemStore()
	l := newLedger(nil)
	ctx := ledgertest.Ctx(alice)

	assert.Nil(t, l.Mint(ctx, db, alice, 1, 10, nil))
	assert.Nil(t, l.MintBatch(ctx, db, alice, []uint64{2, 3}, []uint64{5, 6}, nil))
	assert.Nil(t, l.SetApprovalForAll(ctx, db, bob, true))
	assert.Nil(t, l.SafeBatchTransferFrom(ledgertest.Ctx(bob), db, alice, bob, []uint64{2, 3}, []uint64{1, 1}, nil))
	assert.Nil(t, l.Burn(ctx, db, alice, 1, 10))

	recs, err := l.Events(db, 0)
	assert.Nil(t, err)
	assert.Equal(t, 5, len(recs))

	var mint multitoken.TransferSingle
	assert.Nil(t, recs[0].Decode(&mint))
	assert.True(t, mint.From.IsZero(), "mint from zero")
	assert.True(t, mint.Operator.Equals(alice), "operator is the caller")
	assert.Equal(t, uint64(10), mint.Amount)

	var batch multitoken.TransferBatch
	assert.IsErr(t, errors.ErrInvalidType, recs[0].Decode(&batch))
	assert.Nil(t, recs[3].Decode(&batch))
	assert.True(t, batch.Operator.Equals(bob), "operator")
	assert.True(t, batch.From.Equals(alice), "from")
	assert.Equal(t, []uint64{2, 3}, batch.IDs)
	assert.Equal(t, []uint64{1, 1}, batch.Amounts)

	var burn multitoken.TransferSingle
	assert.Nil(t, recs[4].Decode(&burn))
	assert.True(t, burn.To.IsZero(), "burn to zero")
}

func TestMetadata(t *testing.T) {
	l := newLedger(nil)
	assert.Equal(t, "https://items.example/{id}.json", l.URI(7))
	assert.Equal(t, "items", l.Name())
	assert.True(t, l.Address().Equals(multitoken.LedgerCondition("items").Address()), "address")

	assert.Equal(t, true, l.SupportsInterface(receiver.InterfaceERC165))
	assert.Equal(t, true, l.SupportsInterface(receiver.InterfaceERC1155))
	assert.Equal(t, true, l.SupportsInterface(receiver.InterfaceERC1155MetadataURI))
	assert.Equal(t, false, l.SupportsInterface(receiver.InterfaceERC721))
}
