package multitoken

import (
	"github.com/iov-one/tokenledger"
)

// TransferSingle is emitted by every single mint, burn and transfer. Mint
// has a zero From, burn has a zero To.
type TransferSingle struct {
	Operator tokenledger.Address `json:"operator"`
	From     tokenledger.Address `json:"from"`
	To       tokenledger.Address `json:"to"`
	ID       uint64              `json:"id"`
	Amount   uint64              `json:"amount"`
}

func (TransferSingle) EventName() string { return "multitoken/transfer_single" }

// TransferBatch is emitted by every batch mint, burn and transfer.
type TransferBatch struct {
	Operator tokenledger.Address `json:"operator"`
	From     tokenledger.Address `json:"from"`
	To       tokenledger.Address `json:"to"`
	IDs      []uint64            `json:"ids"`
	Amounts  []uint64            `json:"amounts"`
}

func (TransferBatch) EventName() string { return "multitoken/transfer_batch" }

type ApprovalForAll struct {
	Owner    tokenledger.Address `json:"owner"`
	Operator tokenledger.Address `json:"operator"`
	Approved bool                `json:"approved"`
}

func (ApprovalForAll) EventName() string { return "multitoken/approval_for_all" }
