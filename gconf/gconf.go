/*
Package gconf implements a configuration store intended to hold the
configuration of every deployed ledger instance inside the database.

Configuration is written once, by the genesis initializer of a ledger, and
read back whenever a host needs to rebuild the ledger from state alone.
Values are stored as JSON and validated before they are written.
*/
package gconf

import (
	"encoding/json"

	"github.com/iov-one/tokenledger/errors"
)

type ReadStore interface {
	Get([]byte) ([]byte, error)
}

type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// Validator is implemented by every configuration type.
type Validator interface {
	Validate() error
}

// Key returns the database key of the configuration of one ledger instance.
func Key(pkg, instance string) []byte {
	return []byte("_c:" + pkg + ":" + instance)
}

// Save validates and writes the configuration under the given key.
func Save(db Store, key []byte, src Validator) error {
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", key)
	}
	raw, err := json.Marshal(src)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "marshal: key %q: %s", key, err)
	}
	return db.Set(key, raw)
}

// Load reads the configuration stored under key into dst. ErrNotFound is
// returned when nothing was saved.
func Load(db ReadStore, key []byte, dst interface{}) error {
	raw, err := db.Get(key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "unmarshal: key %q: %s", key, err)
	}
	return nil
}
