package server

import (
	"encoding/json"
	"io/ioutil"
	"os"

	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/errors"
)

// GenesisDoc is kept as a raw object so that sections this tool does not
// know about survive a rewrite.
type GenesisDoc map[string]json.RawMessage

const appStateKey = "app_state"

// ReadGenesis returns the ledger options stored in the genesis file.
func ReadGenesis(path string) (tokenledger.Options, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrNotFound, err.Error())
	}
	var genesis struct {
		State tokenledger.Options `json:"app_state"`
	}
	if err := json.Unmarshal(b, &genesis); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "cannot JSON deserialize genesis: %s", err)
	}
	return genesis.State, nil
}

// writeGenesis creates the genesis file holding the given app state, or
// replaces the app state of an existing one.
func writeGenesis(filename string, options json.RawMessage) error {
	doc := make(GenesisDoc)
	if fileExists(filename) {
		bz, err := ioutil.ReadFile(filename)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(bz, &doc); err != nil {
			return errors.Wrapf(errors.ErrInvalidInput, "genesis %s: %s", filename, err)
		}
	}

	doc[appStateKey] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(filename, out, 0600)
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}
