package nft

import (
	"net/url"
	"regexp"

	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/errors"
	"github.com/iov-one/tokenledger/gconf"
)

var isSymbol = regexp.MustCompile(`^[A-Za-z0-9]{1,16}$`).MatchString

// Configuration holds the immutable parameters of a ledger instance.
type Configuration struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	// BaseURI is prepended to the decimal token id to build the token URI.
	// Empty means tokens have no URI.
	BaseURI string `json:"base_uri,omitempty"`
}

// Validate returns field errors for every invalid field.
func (c *Configuration) Validate() error {
	var errs error
	if c.Name == "" {
		errs = errors.AppendField(errs, "Name", errors.ErrEmpty)
	}
	if !isSymbol(c.Symbol) {
		errs = errors.AppendField(errs, "Symbol", errors.ErrInvalidInput)
	}
	if c.BaseURI != "" {
		if u, err := url.Parse(c.BaseURI); err != nil || u.Scheme == "" {
			errs = errors.AppendField(errs, "BaseURI", errors.ErrInvalidInput)
		}
	}
	return errs
}

// LedgerCondition identifies the ledger instance with the given name.
func LedgerCondition(name string) tokenledger.Condition {
	return tokenledger.NewCondition("nft", "ledger", []byte(name))
}

func configKey(name string) []byte {
	return gconf.Key("nft", name)
}

// Load rebuilds the ledger named name from the configuration its
// initializer saved in db.
func Load(db gconf.ReadStore, name string, host tokenledger.Host) (*Ledger, error) {
	var conf Configuration
	if err := gconf.Load(db, configKey(name), &conf); err != nil {
		return nil, errors.Wrapf(err, "nft ledger %q", name)
	}
	return NewLedger(conf, host), nil
}
