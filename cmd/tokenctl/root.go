package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/commands/server"
	"github.com/iov-one/tokenledger/errors"
	"github.com/iov-one/tokenledger/x/multitoken"
	"github.com/iov-one/tokenledger/x/nft"
)

const (
	flagHome     = "home"
	flagLogLevel = "log_level"
	flagCaller   = "caller"
)

// newRootCmd builds the command tree. Every tree has its own configuration
// so that tests can run many of them side by side.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cfg := viper.New()
	env := &environment{cfg: cfg, out: stdout, logger: log.NewNopLogger()}

	root := &cobra.Command{
		Use:           "tokenctl",
		Short:         "Non-fungible and multi token ledgers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cfg); err != nil {
				return err
			}
			logger, err := newLogger(stderr, cfg.GetString(flagLogLevel))
			if err != nil {
				return err
			}
			env.logger = logger
			return nil
		},
	}

	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".tokenctl")
	flags := root.PersistentFlags()
	flags.String(flagHome, defaultHome, "directory to store files under")
	flags.String(flagLogLevel, "info", "log level: debug, info, error or none")
	flags.String(flagCaller, "", "address of the account issuing the call")
	for _, name := range []string{flagHome, flagLogLevel, flagCaller} {
		if err := cfg.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
	cfg.SetEnvPrefix("TOKENCTL")
	cfg.AutomaticEnv()

	ini := tokenledger.ChainInitializers(nft.Initializer{}, multitoken.Initializer{})
	root.AddCommand(
		server.InitCmd(defaultGenesis, ini, loggerOf(env), cfg),
		validateCmd(ini),
		nftCmd(env),
		multiTokenCmd(env),
		eventsCmd(env),
		addressCmd(env),
		versionCmd(env),
	)
	return root
}

// loadConfig reads config.toml from the home directory, if present.
func loadConfig(cfg *viper.Viper) error {
	path := filepath.Join(cfg.GetString(flagHome), "config.toml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	cfg.SetConfigFile(path)
	if err := cfg.ReadInConfig(); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "config %s: %s", path, err)
	}
	return nil
}

func newLogger(w io.Writer, level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(w)).With("module", "tokenctl")
	if strings.EqualFold(level, "none") {
		return log.NewNopLogger(), nil
	}
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}

// defaultGenesis deploys one ledger of each kind. An optional argument is
// the address that receives the first tokens.
func defaultGenesis(args []string) (json.RawMessage, error) {
	gen := struct {
		NFT        nft.Genesis        `json:"nft"`
		MultiToken multitoken.Genesis `json:"multitoken"`
	}{
		NFT: nft.Genesis{
			Configuration: nft.Configuration{Name: "tokens", Symbol: "TKN"},
		},
		MultiToken: multitoken.Genesis{
			Configuration: multitoken.Configuration{Name: "items"},
		},
	}
	if len(args) > 0 {
		owner, err := tokenledger.ParseAddress(args[0])
		if err != nil {
			return nil, err
		}
		gen.NFT.Tokens = []nft.GenesisToken{{ID: 1, Owner: owner}}
		gen.MultiToken.Balances = []multitoken.GenesisBalance{{Account: owner, ID: 1, Amount: 1000}}
	}
	return json.Marshal(gen)
}

func validateCmd(ini tokenledger.Initializer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <genesis.json>...",
		Short: "Check that genesis files can be loaded",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.ValidateGenesis(ini, args)
		},
	}
}
