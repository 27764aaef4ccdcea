package receiver

import (
	"sync"

	"github.com/iov-one/tokenledger"
)

// Registry is an in-memory tokenledger.Host. Contracts are plain Go values
// deployed at an address.
type Registry struct {
	mu        sync.RWMutex
	contracts map[string]interface{}
}

var _ tokenledger.Host = (*Registry)(nil)

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		contracts: make(map[string]interface{}),
	}
}

// Deploy places contract at the address derived from cond and returns that
// address.
func (r *Registry) Deploy(cond tokenledger.Condition, contract interface{}) tokenledger.Address {
	addr := cond.Address()
	r.Register(addr, contract)
	return addr
}

// Register places contract at addr, replacing any previous one. A nil
// contract removes the code from addr.
func (r *Registry) Register(addr tokenledger.Address, contract interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if contract == nil {
		delete(r.contracts, string(addr))
		return
	}
	r.contracts[string(addr)] = contract
}

// ContractAt implements tokenledger.Host.
func (r *Registry) ContractAt(addr tokenledger.Address) (interface{}, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contracts[string(addr)]
	return c, ok
}
