package tokenledger

// Host is the capability the runtime exposes to a ledger. It answers the
// single question the safe transfer variants need: whether executable code
// is associated with an address, and if so which contract object.
//
// A nil Host treats every address as a plain account.
type Host interface {
	ContractAt(addr Address) (interface{}, bool)
}

// ContractAt queries h and tolerates a nil host.
func ContractAt(h Host, addr Address) (interface{}, bool) {
	if h == nil || addr.IsZero() {
		return nil, false
	}
	return h.ContractAt(addr)
}
