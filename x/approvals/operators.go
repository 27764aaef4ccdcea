/*
Package approvals stores operator approvals: an owner allowing an operator
to manage all of its tokens on one ledger.

Each ledger keeps its operators in its own bucket, keyed by the ledger
address, the owner and the operator. Only the approved state is stored,
unset reads as false.
*/
package approvals

import (
	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/errors"
	"github.com/iov-one/tokenledger/orm"
)

var approved = []byte{1}

// Operators is the operator approval table of one ledger instance.
type Operators struct {
	ledger tokenledger.Address
	bucket orm.Bucket
}

// NewOperators returns the table stored in the named bucket for the ledger
// deployed at ledger.
func NewOperators(bucket string, ledger tokenledger.Address) Operators {
	return Operators{
		ledger: ledger.Clone(),
		bucket: orm.NewBucket(bucket),
	}
}

// Set records whether operator may manage all tokens of owner. Setting
// false removes the entry.
func (o Operators) Set(db tokenledger.KVStore, owner, operator tokenledger.Address, ok bool) error {
	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := operator.Validate(); err != nil {
		return errors.Wrap(err, "operator")
	}
	if !ok {
		return o.bucket.Delete(db, o.ledger, owner, operator)
	}
	return o.bucket.Set(db, approved, o.ledger, owner, operator)
}

// IsApproved returns true if operator may manage all tokens of owner.
// Approval is never implied, an owner is not its own operator.
func (o Operators) IsApproved(db tokenledger.ReadOnlyKVStore, owner, operator tokenledger.Address) (bool, error) {
	if owner.IsZero() || operator.IsZero() {
		return false, nil
	}
	return o.bucket.Has(db, o.ledger, owner, operator)
}

// List returns all operators of owner.
func (o Operators) List(db tokenledger.ReadOnlyKVStore, owner tokenledger.Address) ([]tokenledger.Address, error) {
	models, err := o.bucket.Prefix(db, o.ledger, owner)
	if err != nil {
		return nil, err
	}
	prefix := len(o.ledger) + len(owner)
	res := make([]tokenledger.Address, 0, len(models))
	for _, m := range models {
		res = append(res, tokenledger.Address(m.Key[prefix:]))
	}
	return res, nil
}
