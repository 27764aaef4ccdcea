package server

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/errors"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
type GenOptions func(args []string) (json.RawMessage, error)

// InitCmd writes the genesis file, unless one exists already, and loads
// it into a fresh state using ini. The home directory is read from the
// "home" key of cfg.
func InitCmd(gen GenOptions, ini tokenledger.Initializer, logger log.Logger, cfg *viper.Viper) *cobra.Command {
	cmd := initCmd{
		gen:    gen,
		ini:    ini,
		logger: logger,
		cfg:    cfg,
	}
	return &cobra.Command{
		Use:   "init [genesis args]",
		Short: "Initialize the genesis file and the ledger state",
		RunE:  cmd.run,
	}
}

type initCmd struct {
	gen    GenOptions
	ini    tokenledger.Initializer
	logger log.Logger
	cfg    *viper.Viper
}

func (c initCmd) run(cmd *cobra.Command, args []string) error {
	home := c.cfg.GetString("home")
	genFile := GenesisFile(home)

	if fileExists(genFile) {
		c.logger.Info("Found genesis file", "path", genFile)
	} else {
		if c.gen == nil {
			return errors.Wrap(errors.ErrNotFound, "no genesis file and no generator")
		}
		options, err := c.gen(args)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(genFile), 0755); err != nil {
			return err
		}
		if err := writeGenesis(genFile, options); err != nil {
			return err
		}
		c.logger.Info("Generated genesis file", "path", genFile)
	}

	opts, err := ReadGenesis(genFile)
	if err != nil {
		return err
	}

	db, err := OpenState(home)
	if err != nil {
		return err
	}
	defer db.Close()

	switch done, err := Initialized(db); {
	case err != nil:
		return err
	case done:
		return errors.Wrap(errors.ErrInvalidState, "state already initialized")
	}

	// Genesis is loaded in one batch so a failing section leaves the
	// state untouched.
	cache := db.CacheWrap()
	if err := c.ini.FromGenesis(opts, cache); err != nil {
		cache.Discard()
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	if err := cache.Set(initializedKey, []byte{1}); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return err
	}
	c.logger.Info("Initialized state", "path", filepath.Join(home, "data"))
	return nil
}
