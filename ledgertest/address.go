package ledgertest

import (
	"context"
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/iov-one/tokenledger"
)

var accountSeq uint64

// NewAddress returns a unique, non zero address of a plain account.
func NewAddress() tokenledger.Address {
	return NewCondition().Address()
}

// NewCondition returns a unique condition. Its address can be used to
// deploy a contract.
func NewCondition() tokenledger.Condition {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], atomic.AddUint64(&accountSeq, 1))
	return tokenledger.NewCondition("test", "acct", raw[:])
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation.
func ParseAddress(t testing.TB, encodedAddress string) tokenledger.Address {
	t.Helper()

	addr, err := tokenledger.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// Ctx returns a background context with caller set.
func Ctx(caller tokenledger.Address) tokenledger.Context {
	return tokenledger.WithCaller(context.Background(), caller)
}
