package multitoken

import (
	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/errors"
	"github.com/iov-one/tokenledger/events"
	"github.com/iov-one/tokenledger/orm"
	"github.com/iov-one/tokenledger/x/approvals"
	"github.com/iov-one/tokenledger/x/receiver"
	"github.com/iov-one/tokenledger/x/utils"
)

var supportedInterfaces = receiver.InterfaceSet{
	receiver.InterfaceERC165,
	receiver.InterfaceERC1155,
	receiver.InterfaceERC1155MetadataURI,
}

// Ledger is a multi token ledger instance. Balances are stored under a
// single flat key made of the ledger address, the account and the token
// identifier.
type Ledger struct {
	conf Configuration
	host tokenledger.Host
	addr tokenledger.Address

	balances  orm.Bucket
	operators approvals.Operators
	log       events.Log
}

// NewLedger returns the ledger instance configured by conf. A nil host
// treats every address as a plain account.
func NewLedger(conf Configuration, host tokenledger.Host) *Ledger {
	addr := LedgerCondition(conf.Name).Address()
	return &Ledger{
		conf:      conf,
		host:      host,
		addr:      addr,
		balances:  orm.NewBucket("mtkbal"),
		operators: approvals.NewOperators("mtkopr", addr),
		log:       events.NewLog(addr),
	}
}

// Name of the ledger instance, as configured.
func (l *Ledger) Name() string { return l.conf.Name }

// Address of this ledger instance. Receivers read it with receiver.LedgerOf.
func (l *Ledger) Address() tokenledger.Address { return l.addr.Clone() }

// URI returns the metadata URI template. It is the same for every token
// identifier.
func (l *Ledger) URI(id uint64) string { return l.conf.URI }

// SupportsInterface reports the ERC-165, ERC-1155 and ERC-1155 metadata URI
// interfaces.
func (l *Ledger) SupportsInterface(id receiver.InterfaceID) bool {
	return supportedInterfaces.Supports(id)
}

// Events returns all events emitted after the given sequence number.
func (l *Ledger) Events(db tokenledger.ReadOnlyKVStore, after uint64) ([]events.Record, error) {
	return l.log.List(db, after)
}

// BalanceOf returns the amount of token id held by account.
func (l *Ledger) BalanceOf(db tokenledger.ReadOnlyKVStore, account tokenledger.Address, id uint64) (uint64, error) {
	if account.IsZero() {
		return 0, errors.Wrap(errors.ErrZeroAddress, "balance query for the zero address")
	}
	return l.balance(db, account, id)
}

// BalanceOfBatch returns the balance of every (accounts[i], ids[i]) pair.
func (l *Ledger) BalanceOfBatch(db tokenledger.ReadOnlyKVStore, accounts []tokenledger.Address, ids []uint64) ([]uint64, error) {
	if len(accounts) != len(ids) {
		return nil, ErrNotEqualNumberIdsAndAccounts.Newf("%d accounts, %d ids", len(accounts), len(ids))
	}
	res := make([]uint64, len(ids))
	for i := range ids {
		bal, err := l.BalanceOf(db, accounts[i], ids[i])
		if err != nil {
			return nil, errors.Wrapf(err, "index %d", i)
		}
		res[i] = bal
	}
	return res, nil
}

// IsApprovedForAll returns true if operator manages all tokens of owner.
func (l *Ledger) IsApprovedForAll(db tokenledger.ReadOnlyKVStore, owner, operator tokenledger.Address) (bool, error) {
	return l.operators.IsApproved(db, owner, operator)
}

// SetApprovalForAll grants or revokes operator the right to transfer all
// tokens of the caller.
func (l *Ledger) SetApprovalForAll(ctx tokenledger.Context, db tokenledger.CacheableKVStore, operator tokenledger.Address, approved bool) error {
	return utils.Run(ctx, db, "setApprovalForAll", l.addr, func(ctx tokenledger.Context, db tokenledger.CacheableKVStore) error {
		caller, err := tokenledger.CallerOf(ctx)
		if err != nil {
			return err
		}
		if operator.Equals(caller) {
			return ErrSenderEqualsOperator.New("operator is the caller")
		}
		if operator.IsZero() {
			return errors.Wrap(errors.ErrZeroAddress, "operator")
		}
		if err := l.operators.Set(db, caller, operator, approved); err != nil {
			return err
		}
		_, err = l.log.Emit(db, ApprovalForAll{Owner: caller, Operator: operator, Approved: approved})
		return err
	})
}

// Mint creates amount of token id for to. Minting does not run the
// acceptance check of the recipient.
func (l *Ledger) Mint(ctx tokenledger.Context, db tokenledger.CacheableKVStore, to tokenledger.Address, id, amount uint64, data []byte) error {
	return utils.Run(ctx, db, "mint", l.addr, func(ctx tokenledger.Context, db tokenledger.CacheableKVStore) error {
		operator, _ := tokenledger.GetCaller(ctx)
		if err := l.mint(db, to, []uint64{id}, []uint64{amount}); err != nil {
			return err
		}
		_, err := l.log.Emit(db, TransferSingle{Operator: operator, To: to, ID: id, Amount: amount})
		return err
	})
}

// MintBatch creates amounts[i] of token ids[i] for to.
func (l *Ledger) MintBatch(ctx tokenledger.Context, db tokenledger.CacheableKVStore, to tokenledger.Address, ids, amounts []uint64, data []byte) error {
	return utils.Run(ctx, db, "mintBatch", l.addr, func(ctx tokenledger.Context, db tokenledger.CacheableKVStore) error {
		operator, _ := tokenledger.GetCaller(ctx)
		if err := l.mint(db, to, ids, amounts); err != nil {
			return err
		}
		_, err := l.log.Emit(db, TransferBatch{Operator: operator, To: to, IDs: ids, Amounts: amounts})
		return err
	})
}

func (l *Ledger) mint(db tokenledger.KVStore, to tokenledger.Address, ids, amounts []uint64) error {
	if to.IsZero() {
		return errors.Wrap(errors.ErrZeroAddress, "mint to the zero address")
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if err := sameLength(ids, amounts); err != nil {
		return err
	}
	for i, id := range ids {
		if err := l.add(db, to, id, amounts[i]); err != nil {
			return err
		}
	}
	return nil
}

// Burn destroys amount of token id held by from. Like Mint, it does not
// check the caller.
func (l *Ledger) Burn(ctx tokenledger.Context, db tokenledger.CacheableKVStore, from tokenledger.Address, id, amount uint64) error {
	return utils.Run(ctx, db, "burn", l.addr, func(ctx tokenledger.Context, db tokenledger.CacheableKVStore) error {
		operator, _ := tokenledger.GetCaller(ctx)
		if err := l.burn(db, from, []uint64{id}, []uint64{amount}); err != nil {
			return err
		}
		_, err := l.log.Emit(db, TransferSingle{Operator: operator, From: from, ID: id, Amount: amount})
		return err
	})
}

// BurnBatch destroys amounts[i] of token ids[i] held by from.
func (l *Ledger) BurnBatch(ctx tokenledger.Context, db tokenledger.CacheableKVStore, from tokenledger.Address, ids, amounts []uint64) error {
	return utils.Run(ctx, db, "burnBatch", l.addr, func(ctx tokenledger.Context, db tokenledger.CacheableKVStore) error {
		operator, _ := tokenledger.GetCaller(ctx)
		if err := l.burn(db, from, ids, amounts); err != nil {
			return err
		}
		_, err := l.log.Emit(db, TransferBatch{Operator: operator, From: from, IDs: ids, Amounts: amounts})
		return err
	})
}

func (l *Ledger) burn(db tokenledger.KVStore, from tokenledger.Address, ids, amounts []uint64) error {
	if from.IsZero() {
		return errors.Wrap(errors.ErrZeroAddress, "burn from the zero address")
	}
	if err := sameLength(ids, amounts); err != nil {
		return err
	}
	for i, id := range ids {
		if err := l.sub(db, from, id, amounts[i]); err != nil {
			return err
		}
	}
	return nil
}

// SafeTransferFrom moves amount of token id from from to to. The caller
// must be from or an operator of from. When to is a contract it must accept
// the transfer, or the call fails with errors.ErrUnsafeRecipient and
// nothing persists.
func (l *Ledger) SafeTransferFrom(ctx tokenledger.Context, db tokenledger.CacheableKVStore, from, to tokenledger.Address, id, amount uint64, data []byte) error {
	return utils.Run(ctx, db, "safeTransferFrom", l.addr, func(ctx tokenledger.Context, db tokenledger.CacheableKVStore) error {
		operator, err := l.transfer(ctx, db, from, to, []uint64{id}, []uint64{amount})
		if err != nil {
			return err
		}
		ev := TransferSingle{Operator: operator, From: from, To: to, ID: id, Amount: amount}
		if _, err := l.log.Emit(db, ev); err != nil {
			return err
		}
		return l.doSafeTransferAcceptanceCheck(ctx, db, operator, from, to, id, amount, data)
	})
}

// SafeBatchTransferFrom is the batch variant of SafeTransferFrom. Pairs are
// applied in order, so a repeated id is checked against the balance left
// by the previous pairs.
func (l *Ledger) SafeBatchTransferFrom(ctx tokenledger.Context, db tokenledger.CacheableKVStore, from, to tokenledger.Address, ids, amounts []uint64, data []byte) error {
	return utils.Run(ctx, db, "safeBatchTransferFrom", l.addr, func(ctx tokenledger.Context, db tokenledger.CacheableKVStore) error {
		operator, err := l.transfer(ctx, db, from, to, ids, amounts)
		if err != nil {
			return err
		}
		ev := TransferBatch{Operator: operator, From: from, To: to, IDs: ids, Amounts: amounts}
		if _, err := l.log.Emit(db, ev); err != nil {
			return err
		}
		return l.doSafeBatchTransferAcceptanceCheck(ctx, db, operator, from, to, ids, amounts, data)
	})
}

// transfer authorizes the caller and moves all pairs. It returns the caller.
func (l *Ledger) transfer(ctx tokenledger.Context, db tokenledger.KVStore, from, to tokenledger.Address, ids, amounts []uint64) (tokenledger.Address, error) {
	caller, err := tokenledger.CallerOf(ctx)
	if err != nil {
		return nil, err
	}
	if !caller.Equals(from) {
		switch ok, err := l.operators.IsApproved(db, from, caller); {
		case err != nil:
			return nil, err
		case !ok:
			return nil, ErrSenderNotEqualsFrom.Newf("caller %s, from %s", caller, from)
		}
	}
	if to.IsZero() {
		return nil, errors.Wrap(errors.ErrZeroAddress, "transfer to the zero address")
	}
	if err := to.Validate(); err != nil {
		return nil, errors.Wrap(err, "recipient")
	}
	if err := sameLength(ids, amounts); err != nil {
		return nil, err
	}
	for i, id := range ids {
		if err := l.sub(db, from, id, amounts[i]); err != nil {
			return nil, err
		}
		if err := l.add(db, to, id, amounts[i]); err != nil {
			return nil, err
		}
	}
	return caller, nil
}

// DoSafeTransferAcceptanceCheck runs the single transfer acceptance check
// of to on its own. Nil means the transfer would be accepted.
func (l *Ledger) DoSafeTransferAcceptanceCheck(ctx tokenledger.Context, db tokenledger.CacheableKVStore, operator, from, to tokenledger.Address, id, amount uint64, data []byte) error {
	return utils.Run(ctx, db, "acceptanceCheck", l.addr, func(ctx tokenledger.Context, db tokenledger.CacheableKVStore) error {
		return l.doSafeTransferAcceptanceCheck(ctx, db, operator, from, to, id, amount, data)
	})
}

// DoSafeBatchTransferAcceptanceCheck runs the batch transfer acceptance
// check of to on its own.
func (l *Ledger) DoSafeBatchTransferAcceptanceCheck(ctx tokenledger.Context, db tokenledger.CacheableKVStore, operator, from, to tokenledger.Address, ids, amounts []uint64, data []byte) error {
	return utils.Run(ctx, db, "batchAcceptanceCheck", l.addr, func(ctx tokenledger.Context, db tokenledger.CacheableKVStore) error {
		return l.doSafeBatchTransferAcceptanceCheck(ctx, db, operator, from, to, ids, amounts, data)
	})
}

func (l *Ledger) doSafeTransferAcceptanceCheck(ctx tokenledger.Context, db tokenledger.CacheableKVStore, operator, from, to tokenledger.Address, id, amount uint64, data []byte) error {
	t := receiver.Transfer{Ledger: l.addr, Operator: operator, From: from, To: to, Data: data}
	return receiver.CheckMultiTokenReceived(ctx, db, l.host, t, id, amount)
}

func (l *Ledger) doSafeBatchTransferAcceptanceCheck(ctx tokenledger.Context, db tokenledger.CacheableKVStore, operator, from, to tokenledger.Address, ids, amounts []uint64, data []byte) error {
	t := receiver.Transfer{Ledger: l.addr, Operator: operator, From: from, To: to, Data: data}
	return receiver.CheckMultiTokenBatchReceived(ctx, db, l.host, t, ids, amounts)
}

func sameLength(ids, amounts []uint64) error {
	if len(ids) != len(amounts) {
		return ErrNotEqualNumberIdsAndAmounts.Newf("%d ids, %d amounts", len(ids), len(amounts))
	}
	return nil
}

func (l *Ledger) balance(db tokenledger.ReadOnlyKVStore, account tokenledger.Address, id uint64) (uint64, error) {
	return l.balances.GetUint64(db, l.addr, account, orm.EncodeUint64(id))
}

func (l *Ledger) add(db tokenledger.KVStore, account tokenledger.Address, id, amount uint64) error {
	bal, err := l.balance(db, account, id)
	if err != nil {
		return err
	}
	if bal+amount < bal {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s for token %d", account, id)
	}
	return l.balances.SetUint64(db, bal+amount, l.addr, account, orm.EncodeUint64(id))
}

// sub fails before writing when the balance is too low. A zero balance
// removes the entry.
func (l *Ledger) sub(db tokenledger.KVStore, account tokenledger.Address, id, amount uint64) error {
	bal, err := l.balance(db, account, id)
	if err != nil {
		return err
	}
	if bal < amount {
		return ErrFromBalanceLessThanAmount.Newf("token %d: balance %d, amount %d", id, bal, amount)
	}
	return l.balances.SetUint64(db, bal-amount, l.addr, account, orm.EncodeUint64(id))
}
