package nft

import (
	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/errors"
	"github.com/iov-one/tokenledger/gconf"
)

const optKey = "nft"

// GenesisToken is a token minted while the ledger is deployed.
type GenesisToken struct {
	ID    uint64              `json:"id"`
	Owner tokenledger.Address `json:"owner"`
}

// Genesis is the "nft" section of the genesis file.
type Genesis struct {
	Configuration
	Tokens []GenesisToken `json:"tokens,omitempty"`
}

// Initializer deploys the ledger described in the genesis file: it saves
// the configuration and mints the listed tokens.
type Initializer struct {
	Host tokenledger.Host
}

var _ tokenledger.Initializer = Initializer{}

// FromGenesis is a noop when the genesis file has no nft section.
func (i Initializer) FromGenesis(opts tokenledger.Options, kv tokenledger.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	if _, ok := opts[optKey]; !ok {
		return nil
	}
	if err := gconf.Save(kv, configKey(gen.Name), &gen.Configuration); err != nil {
		return errors.Wrap(err, "nft configuration")
	}
	l := NewLedger(gen.Configuration, i.Host)
	for _, t := range gen.Tokens {
		if err := l.mint(kv, t.Owner, t.ID); err != nil {
			return errors.Wrapf(err, "genesis token %d", t.ID)
		}
	}
	return nil
}
