package orm

import (
	"github.com/iov-one/tokenledger/errors"
)

// Orm reserves 100~109 error codes

// ErrInvalidEncoding is returned when a stored value cannot be decoded
var ErrInvalidEncoding = errors.Register(100, "invalid encoding")
