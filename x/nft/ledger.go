package nft

import (
	"strconv"

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
	receiver.InterfaceERC721,
	receiver.InterfaceERC721Metadata,
}

// Ledger is a non-fungible token ledger instance. It holds no mutable
// state, all of it lives in the store passed to every call.
type Ledger struct {
	conf Configuration
	host tokenledger.Host
	addr tokenledger.Address

	owners    orm.Bucket
	balances  orm.Bucket
	approved  orm.Bucket
	operators approvals.Operators
	log       events.Log
}

// NewLedger returns the ledger instance configured by conf. Contracts are
// detected through host, a nil host treats every address as a plain
// account.
func NewLedger(conf Configuration, host tokenledger.Host) *Ledger {
	addr := LedgerCondition(conf.Name).Address()
	return &Ledger{
		conf:      conf,
		host:      host,
		addr:      addr,
		owners:    orm.NewBucket("nftown"),
		balances:  orm.NewBucket("nftbal"),
		approved:  orm.NewBucket("nftapr"),
		operators: approvals.NewOperators("nftopr", addr),
		log:       events.NewLog(addr),
	}
}

// Name of the token collection.
func (l *Ledger) Name() string { return l.conf.Name }

// Symbol of the token collection.
func (l *Ledger) Symbol() string { return l.conf.Symbol }

// Address of this ledger instance. Receivers read it with receiver.LedgerOf.
func (l *Ledger) Address() tokenledger.Address { return l.addr.Clone() }

// SupportsInterface reports the ERC-165, ERC-721 and ERC-721 metadata
// interfaces.
func (l *Ledger) SupportsInterface(id receiver.InterfaceID) bool {
	return supportedInterfaces.Supports(id)
}

// Events returns all events emitted after the given sequence number.
func (l *Ledger) Events(db tokenledger.ReadOnlyKVStore, after uint64) ([]events.Record, error) {
	return l.log.List(db, after)
}

func tokenKey(tokenID uint64) []byte {
	return orm.EncodeUint64(tokenID)
}

// BalanceOf returns the number of tokens owned by account.
func (l *Ledger) BalanceOf(db tokenledger.ReadOnlyKVStore, account tokenledger.Address) (uint64, error) {
	if account.IsZero() {
		return 0, errors.Wrap(errors.ErrZeroAddress, "balance query for the zero address")
	}
	return l.balances.GetUint64(db, l.addr, account)
}

// OwnerOf returns the owner of a minted token.
func (l *Ledger) OwnerOf(db tokenledger.ReadOnlyKVStore, tokenID uint64) (tokenledger.Address, error) {
	raw, err := l.owners.Get(db, l.addr, tokenKey(tokenID))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ErrNotMinted.Newf("token %d", tokenID)
	}
	return tokenledger.Address(raw), nil
}

// GetApproved returns the spender approved for a minted token, nil if
// none.
func (l *Ledger) GetApproved(db tokenledger.ReadOnlyKVStore, tokenID uint64) (tokenledger.Address, error) {
	if _, err := l.OwnerOf(db, tokenID); err != nil {
		return nil, err
	}
	raw, err := l.approved.Get(db, l.addr, tokenKey(tokenID))
	if err != nil {
		return nil, err
	}
	return tokenledger.Address(raw), nil
}

// IsApprovedForAll returns true if operator manages all tokens of owner.
func (l *Ledger) IsApprovedForAll(db tokenledger.ReadOnlyKVStore, owner, operator tokenledger.Address) (bool, error) {
	return l.operators.IsApproved(db, owner, operator)
}

// IsApprovedOrOwner returns true if spender owns tokenID, is approved for
// it, or is an operator of its owner. It never modifies state.
func (l *Ledger) IsApprovedOrOwner(db tokenledger.ReadOnlyKVStore, spender tokenledger.Address, tokenID uint64) (bool, error) {
	owner, err := l.OwnerOf(db, tokenID)
	if err != nil {
		return false, err
	}
	return l.isApprovedOrOwner(db, spender, owner, tokenID)
}

func (l *Ledger) isApprovedOrOwner(db tokenledger.ReadOnlyKVStore, spender, owner tokenledger.Address, tokenID uint64) (bool, error) {
	if spender.IsZero() {
		return false, nil
	}
	if spender.Equals(owner) {
		return true, nil
	}
	approved, err := l.approved.Get(db, l.addr, tokenKey(tokenID))
	if err != nil {
		return false, err
	}
	if approved != nil && spender.Equals(approved) {
		return true, nil
	}
	return l.operators.IsApproved(db, owner, spender)
}

// TokenURI returns the base URI followed by the decimal token id, or an
// empty string when no base URI is configured.
func (l *Ledger) TokenURI(db tokenledger.ReadOnlyKVStore, tokenID uint64) (string, error) {
	if _, err := l.OwnerOf(db, tokenID); err != nil {
		return "", err
	}
	if l.conf.BaseURI == "" {
		return "", nil
	}
	return l.conf.BaseURI + strconv.FormatUint(tokenID, 10), nil
}

// Mint creates tokenID owned by to.
func (l *Ledger) Mint(ctx tokenledger.Context, db tokenledger.CacheableKVStore, to tokenledger.Address, tokenID uint64) error {
	return utils.Run(ctx, db, "mint", l.addr, func(ctx tokenledger.Context, db tokenledger.CacheableKVStore) error {
		return l.mint(db, to, tokenID)
	})
}

func (l *Ledger) mint(db tokenledger.KVStore, to tokenledger.Address, tokenID uint64) error {
	if to.IsZero() {
		return errors.Wrap(errors.ErrZeroAddress, "mint to the zero address")
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	minted, err := l.owners.Has(db, l.addr, tokenKey(tokenID))
	if err != nil {
		return err
	}
	if minted {
		return ErrAlreadyMinted.Newf("token %d", tokenID)
	}
	if err := l.addBalance(db, to); err != nil {
		return err
	}
	if err := l.owners.Set(db, to, l.addr, tokenKey(tokenID)); err != nil {
		return err
	}
	_, err = l.log.Emit(db, Transfer{To: to, TokenID: tokenID})
	return err
}

// Burn destroys tokenID. It does not check the caller.
func (l *Ledger) Burn(ctx tokenledger.Context, db tokenledger.CacheableKVStore, tokenID uint64) error {
	return utils.Run(ctx, db, "burn", l.addr, func(ctx tokenledger.Context, db tokenledger.CacheableKVStore) error {
		owner, err := l.OwnerOf(db, tokenID)
		if err != nil {
			return err
		}
		if err := l.approved.Delete(db, l.addr, tokenKey(tokenID)); err != nil {
			return err
		}
		if err := l.subBalance(db, owner); err != nil {
			return err
		}
		if err := l.owners.Delete(db, l.addr, tokenKey(tokenID)); err != nil {
			return err
		}
		_, err = l.log.Emit(db, Transfer{From: owner, TokenID: tokenID})
		return err
	})
}

// Approve allows spender to transfer tokenID. Only the owner may approve.
func (l *Ledger) Approve(ctx tokenledger.Context, db tokenledger.CacheableKVStore, spender tokenledger.Address, tokenID uint64) error {
	return utils.Run(ctx, db, "approve", l.addr, func(ctx tokenledger.Context, db tokenledger.CacheableKVStore) error {
		caller, err := tokenledger.CallerOf(ctx)
		if err != nil {
			return err
		}
		owner, err := l.OwnerOf(db, tokenID)
		if err != nil {
			return err
		}
		if !caller.Equals(owner) {
			return ErrInvalidOwner.Newf("caller %s does not own token %d", caller, tokenID)
		}
		if spender.IsZero() {
			return errors.Wrap(errors.ErrZeroAddress, "approve the zero address")
		}
		if err := spender.Validate(); err != nil {
			return errors.Wrap(err, "spender")
		}
		if spender.Equals(owner) {
			return ErrApproveToSelf.New("approval to current owner")
		}
		if err := l.approved.Set(db, spender, l.addr, tokenKey(tokenID)); err != nil {
			return err
		}
		_, err = l.log.Emit(db, Approval{Owner: owner, Approved: spender, TokenID: tokenID})
		return err
	})
}

// SetApprovalForAll grants or revokes operator the right to manage all
// tokens of the caller.
func (l *Ledger) SetApprovalForAll(ctx tokenledger.Context, db tokenledger.CacheableKVStore, operator tokenledger.Address, approved bool) error {
	return utils.Run(ctx, db, "setApprovalForAll", l.addr, func(ctx tokenledger.Context, db tokenledger.CacheableKVStore) error {
		caller, err := tokenledger.CallerOf(ctx)
		if err != nil {
			return err
		}
		if operator.Equals(caller) {
			return ErrApproveToSelf.New("operator is the caller")
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

// TransferFrom moves tokenID from its owner from to to. The caller must
// own the token, be approved for it or be an operator of the owner.
func (l *Ledger) TransferFrom(ctx tokenledger.Context, db tokenledger.CacheableKVStore, from, to tokenledger.Address, tokenID uint64) error {
	return utils.Run(ctx, db, "transferFrom", l.addr, func(ctx tokenledger.Context, db tokenledger.CacheableKVStore) error {
		_, err := l.transfer(ctx, db, from, to, tokenID)
		return err
	})
}

// SafeTransferFrom is TransferFrom followed by the acceptance check of the
// recipient. When the recipient is a contract that does not accept the
// token, the whole call fails with errors.ErrUnsafeRecipient.
func (l *Ledger) SafeTransferFrom(ctx tokenledger.Context, db tokenledger.CacheableKVStore, from, to tokenledger.Address, tokenID uint64, data []byte) error {
	return utils.Run(ctx, db, "safeTransferFrom", l.addr, func(ctx tokenledger.Context, db tokenledger.CacheableKVStore) error {
		operator, err := l.transfer(ctx, db, from, to, tokenID)
		if err != nil {
			return err
		}
		return l.checkOnReceived(ctx, db, operator, from, to, tokenID, data)
	})
}

// CheckOnReceived runs the acceptance check of to on its own, with the
// caller as operator. Nil means the transfer would be accepted.
func (l *Ledger) CheckOnReceived(ctx tokenledger.Context, db tokenledger.CacheableKVStore, from, to tokenledger.Address, tokenID uint64, data []byte) error {
	return utils.Run(ctx, db, "checkOnReceived", l.addr, func(ctx tokenledger.Context, db tokenledger.CacheableKVStore) error {
		operator, err := tokenledger.CallerOf(ctx)
		if err != nil {
			return err
		}
		return l.checkOnReceived(ctx, db, operator, from, to, tokenID, data)
	})
}

func (l *Ledger) checkOnReceived(ctx tokenledger.Context, db tokenledger.CacheableKVStore, operator, from, to tokenledger.Address, tokenID uint64, data []byte) error {
	t := receiver.Transfer{
		Ledger:   l.addr,
		Operator: operator,
		From:     from,
		To:       to,
		Data:     data,
	}
	return receiver.CheckNFTReceived(ctx, db, l.host, t, tokenID)
}

// transfer performs all checks and bookkeeping of a transfer and returns
// the caller.
func (l *Ledger) transfer(ctx tokenledger.Context, db tokenledger.KVStore, from, to tokenledger.Address, tokenID uint64) (tokenledger.Address, error) {
	caller, err := tokenledger.CallerOf(ctx)
	if err != nil {
		return nil, err
	}
	if to.IsZero() {
		return nil, errors.Wrap(errors.ErrZeroAddress, "transfer to the zero address")
	}
	if err := to.Validate(); err != nil {
		return nil, errors.Wrap(err, "recipient")
	}
	owner, err := l.OwnerOf(db, tokenID)
	if err != nil {
		return nil, err
	}
	if !owner.Equals(from) {
		return nil, ErrInvalidOwner.Newf("token %d is not owned by %s", tokenID, from)
	}
	switch ok, err := l.isApprovedOrOwner(db, caller, owner, tokenID); {
	case err != nil:
		return nil, err
	case !ok:
		return nil, ErrNotApprovedOrNotOwner.Newf("caller %s, token %d", caller, tokenID)
	}

	if err := l.approved.Delete(db, l.addr, tokenKey(tokenID)); err != nil {
		return nil, err
	}
	if err := l.subBalance(db, from); err != nil {
		return nil, err
	}
	if err := l.addBalance(db, to); err != nil {
		return nil, err
	}
	if err := l.owners.Set(db, to, l.addr, tokenKey(tokenID)); err != nil {
		return nil, err
	}
	if _, err := l.log.Emit(db, Transfer{From: from, To: to, TokenID: tokenID}); err != nil {
		return nil, err
	}
	return caller, nil
}

func (l *Ledger) addBalance(db tokenledger.KVStore, account tokenledger.Address) error {
	bal, err := l.balances.GetUint64(db, l.addr, account)
	if err != nil {
		return err
	}
	if bal+1 < bal {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", account)
	}
	return l.balances.SetUint64(db, bal+1, l.addr, account)
}

func (l *Ledger) subBalance(db tokenledger.KVStore, account tokenledger.Address) error {
	bal, err := l.balances.GetUint64(db, l.addr, account)
	if err != nil {
		return err
	}
	if bal == 0 {
		// owner entries and balances are only ever written together
		return errors.Wrapf(errors.ErrInvalidState, "no balance for owner %s", account)
	}
	return l.balances.SetUint64(db, bal-1, l.addr, account)
}
