package receiver

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Ack is the acknowledgment value a receiver returns to accept a transfer.
// It equals the selector of the callback that is being answered.
type Ack [4]byte

func (a Ack) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Selector returns the first four bytes of the legacy Keccak-256 hash of a
// function signature, such as "supportsInterface(bytes4)".
func Selector(signature string) Ack {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write([]byte(signature))
	var a Ack
	copy(a[:], h.Sum(nil))
	return a
}

var (
	// NFTReceivedAck answers OnNFTReceived.
	NFTReceivedAck = Selector("onERC721Received(address,address,uint256,bytes)")

	// MultiTokenReceivedAck answers OnMultiTokenReceived.
	MultiTokenReceivedAck = Selector("onERC1155Received(address,address,uint256,uint256,bytes)")

	// MultiTokenBatchReceivedAck answers OnMultiTokenBatchReceived.
	MultiTokenBatchReceivedAck = Selector("onERC1155BatchReceived(address,address,uint256[],uint256[],bytes)")
)

// InterfaceID identifies a set of functions as the XOR of their selectors.
type InterfaceID [4]byte

func (id InterfaceID) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// InterfaceOf computes the identifier of the given function signatures.
func InterfaceOf(signatures ...string) InterfaceID {
	var id InterfaceID
	for _, sig := range signatures {
		s := Selector(sig)
		for i := range id {
			id[i] ^= s[i]
		}
	}
	return id
}

// Well known interface identifiers.
var (
	InterfaceERC165             = InterfaceID{0x01, 0xff, 0xc9, 0xa7}
	InterfaceERC721             = InterfaceID{0x80, 0xac, 0x58, 0xcd}
	InterfaceERC721Metadata     = InterfaceID{0x5b, 0x5e, 0x13, 0x9f}
	InterfaceERC721Receiver     = InterfaceID{0x15, 0x0b, 0x7a, 0x02}
	InterfaceERC1155            = InterfaceID{0xd9, 0xb6, 0x7a, 0x26}
	InterfaceERC1155MetadataURI = InterfaceID{0x0e, 0x89, 0x34, 0x1c}
	InterfaceERC1155Receiver    = InterfaceID{0x4e, 0x23, 0x12, 0xe0}
	invalidInterface            = InterfaceID{0xff, 0xff, 0xff, 0xff}
)

// InterfaceSet lists the interfaces a contract implements.
type InterfaceSet []InterfaceID

// Supports implements the ERC-165 rules: 0xffffffff is never supported.
func (s InterfaceSet) Supports(id InterfaceID) bool {
	if id == invalidInterface {
		return false
	}
	for _, have := range s {
		if have == id {
			return true
		}
	}
	return false
}
