package multitoken

import (
	"regexp"

	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/errors"
	"github.com/iov-one/tokenledger/gconf"
)

var isName = regexp.MustCompile(`^[A-Za-z0-9_\-.]{1,64}$`).MatchString

// Configuration holds the immutable parameters of a ledger instance.
type Configuration struct {
	Name string `json:"name"`
	// URI is the metadata URI template shared by all token identifiers.
	// Clients replace "{id}" with the hex encoded identifier.
	URI string `json:"uri"`
}

func (c *Configuration) Validate() error {
	var errs error
	if !isName(c.Name) {
		errs = errors.AppendField(errs, "Name", errors.ErrInvalidInput)
	}
	return errs
}

// LedgerCondition identifies the ledger instance with the given name.
func LedgerCondition(name string) tokenledger.Condition {
	return tokenledger.NewCondition("multitoken", "ledger", []byte(name))
}

func configKey(name string) []byte {
	return gconf.Key("multitoken", name)
}

// Load rebuilds the ledger named name from the configuration its
// initializer saved in db.
func Load(db gconf.ReadStore, name string, host tokenledger.Host) (*Ledger, error) {
	var conf Configuration
	if err := gconf.Load(db, configKey(name), &conf); err != nil {
		return nil, errors.Wrapf(err, "multitoken ledger %q", name)
	}
	return NewLedger(conf, host), nil
}
