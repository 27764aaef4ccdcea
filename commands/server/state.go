package server

import (
	"os"
	"path/filepath"

	"github.com/iov-one/tokenledger/errors"
	"github.com/iov-one/tokenledger/store/badgerdb"
)

// initializedKey marks a state that was already loaded from genesis.
var initializedKey = []byte("_i:genesis")

// GenesisFile returns the path of the genesis file under home.
func GenesisFile(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// OpenState opens the ledger state kept under home, creating it if needed.
func OpenState(home string) (*badgerdb.BadgerStore, error) {
	dir := filepath.Join(home, "data")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return badgerdb.OpenBadger(dir)
}

// Initialized returns true once the state was loaded from genesis.
func Initialized(db *badgerdb.BadgerStore) (bool, error) {
	return db.Has(initializedKey)
}
