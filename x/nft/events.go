package nft

import (
	"github.com/iov-one/tokenledger"
)

// Transfer is emitted whenever ownership of a token changes, including
// mint (From is zero) and burn (To is zero).
type Transfer struct {
	From    tokenledger.Address `json:"from"`
	To      tokenledger.Address `json:"to"`
	TokenID uint64              `json:"token_id"`
}

func (Transfer) EventName() string { return "nft/transfer" }

// Approval is emitted when an owner approves a spender for one token.
type Approval struct {
	Owner    tokenledger.Address `json:"owner"`
	Approved tokenledger.Address `json:"approved"`
	TokenID  uint64              `json:"token_id"`
}

func (Approval) EventName() string { return "nft/approval" }

// ApprovalForAll is emitted when an owner grants or revokes an operator.
type ApprovalForAll struct {
	Owner    tokenledger.Address `json:"owner"`
	Operator tokenledger.Address `json:"operator"`
	Approved bool                `json:"approved"`
}

func (ApprovalForAll) EventName() string { return "nft/approval_for_all" }
