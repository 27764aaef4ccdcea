package nft

import (
	"github.com/iov-one/tokenledger/errors"
)

// nft reserves 500~599
var (
	ErrNotMinted             = errors.Register(500, "token not minted")
	ErrAlreadyMinted         = errors.Register(501, "token already minted")
	ErrInvalidOwner          = errors.Register(502, "invalid owner")
	ErrNotApprovedOrNotOwner = errors.Register(503, "caller is not owner nor approved")
	ErrApproveToSelf         = errors.Register(504, "approve to self")
)
