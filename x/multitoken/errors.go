package multitoken

import (
	"github.com/iov-one/tokenledger/errors"
)

// multitoken reserves 600~699
var (
	ErrSenderNotEqualsFrom          = errors.Register(600, "caller is not owner nor approved")
	ErrSenderEqualsOperator         = errors.Register(601, "setting approval status for self")
	ErrNotEqualNumberIdsAndAmounts  = errors.Register(602, "ids and amounts length mismatch")
	ErrNotEqualNumberIdsAndAccounts = errors.Register(603, "accounts and ids length mismatch")
	ErrFromBalanceLessThanAmount    = errors.Register(604, "insufficient balance")
)
