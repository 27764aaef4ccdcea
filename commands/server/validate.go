package server

import (
	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/errors"
	"github.com/iov-one/tokenledger/store"
)

// ValidateGenesis runs the initializer against every genesis file and
// returns the first failure.
func ValidateGenesis(ini tokenledger.Initializer, genesisPaths []string) error {
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini tokenledger.Initializer, genesisPath string) error {
	opts, err := ReadGenesis(genesisPath)
	if err != nil {
		return err
	}

	// Use in memory store because we want to discard the result.
	db := store.MemStore()

	if err := ini.FromGenesis(opts, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
