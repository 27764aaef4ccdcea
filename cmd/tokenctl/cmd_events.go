package main

import (
	"github.com/spf13/cobra"

	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/errors"
	"github.com/iov-one/tokenledger/events"
	"github.com/iov-one/tokenledger/store/badgerdb"
	"github.com/iov-one/tokenledger/x/multitoken"
	"github.com/iov-one/tokenledger/x/nft"
)

func eventsCmd(env *environment) *cobra.Command {
	var after uint64
	cmd := &cobra.Command{
		Use:   "events <nft|mt> <ledger>",
		Short: "Print the events emitted by a ledger",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, name := args[0], args[1]
			return env.withState(func(db *badgerdb.BadgerStore) error {
				var list func(tokenledger.ReadOnlyKVStore, uint64) ([]events.Record, error)
				switch kind {
				case "nft":
					l, err := nft.Load(db, name, nil)
					if err != nil {
						return err
					}
					list = l.Events
				case "mt", "multitoken":
					l, err := multitoken.Load(db, name, nil)
					if err != nil {
						return err
					}
					list = l.Events
				default:
					return errors.Wrapf(errors.ErrInvalidInput, "unknown ledger kind %q", kind)
				}
				recs, err := list(db, after)
				if err != nil {
					return err
				}
				if recs == nil {
					recs = []events.Record{}
				}
				return env.print(recs)
			})
		},
	}
	cmd.Flags().Uint64Var(&after, "after", 0, "only events with a greater sequence")
	return cmd
}

func versionCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := env.out.Write([]byte(tokenledger.Version() + "\n"))
			return err
		},
	}
}
