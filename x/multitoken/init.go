package multitoken

import (
	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/errors"
	"github.com/iov-one/tokenledger/gconf"
)

const optKey = "multitoken"

// GenesisBalance is a balance credited while the ledger is deployed.
type GenesisBalance struct {
	Account tokenledger.Address `json:"account"`
	ID      uint64              `json:"id"`
	Amount  uint64              `json:"amount"`
}

// Genesis is the "multitoken" section of the genesis file.
type Genesis struct {
	Configuration
	Balances []GenesisBalance `json:"balances,omitempty"`
}

// Initializer deploys the ledger described in the genesis file.
type Initializer struct {
	Host tokenledger.Host
}

var _ tokenledger.Initializer = Initializer{}

func (i Initializer) FromGenesis(opts tokenledger.Options, kv tokenledger.KVStore) error {
	if _, ok := opts[optKey]; !ok {
		return nil
	}
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	if err := gconf.Save(kv, configKey(gen.Name), &gen.Configuration); err != nil {
		return errors.Wrap(err, "multitoken configuration")
	}
	l := NewLedger(gen.Configuration, i.Host)
	for n, b := range gen.Balances {
		if err := l.mint(kv, b.Account, []uint64{b.ID}, []uint64{b.Amount}); err != nil {
			return errors.Wrapf(err, "genesis balance %d", n)
		}
	}
	return nil
}
