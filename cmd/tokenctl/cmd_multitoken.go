package main

import (
	"github.com/spf13/cobra"

	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/errors"
	"github.com/iov-one/tokenledger/store/badgerdb"
	"github.com/iov-one/tokenledger/x/multitoken"
)

func multiTokenCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mt",
		Aliases: []string{"multitoken"},
		Short:   "Multi token ledger",
	}
	ledger := cmd.PersistentFlags().String(flagLedger, "items", "name of the ledger instance")

	run := func(fn func(ctx tokenledger.Context, db *badgerdb.BadgerStore, l *multitoken.Ledger) error) error {
		ctx, err := env.context()
		if err != nil {
			return err
		}
		return env.withState(func(db *badgerdb.BadgerStore) error {
			l, err := multitoken.Load(db, *ledger, nil)
			if err != nil {
				return err
			}
			return fn(ctx, db, l)
		})
	}

	// pairs parses the ids and amounts arguments. A single pair selects
	// the single variant of an operation.
	pairs := func(rawIDs, rawAmounts string) ([]uint64, []uint64, error) {
		ids, err := parseUints(rawIDs)
		if err != nil {
			return nil, nil, errors.Wrap(err, "ids")
		}
		amounts, err := parseUints(rawAmounts)
		if err != nil {
			return nil, nil, errors.Wrap(err, "amounts")
		}
		return ids, amounts, nil
	}

	var data string
	mint := &cobra.Command{
		Use:   "mint <to> <ids> <amounts>",
		Short: "Mint tokens, ids and amounts are comma separated",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			ids, amounts, err := pairs(args[1], args[2])
			if err != nil {
				return err
			}
			return run(func(ctx tokenledger.Context, db *badgerdb.BadgerStore, l *multitoken.Ledger) error {
				if len(ids) == 1 && len(amounts) == 1 {
					return l.Mint(ctx, db, to, ids[0], amounts[0], []byte(data))
				}
				return l.MintBatch(ctx, db, to, ids, amounts, []byte(data))
			})
		},
	}
	mint.Flags().StringVar(&data, "data", "", "data attached to the call")

	transfer := &cobra.Command{
		Use:   "transfer <from> <to> <ids> <amounts>",
		Short: "Safely transfer tokens, ids and amounts are comma separated",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			to, err := parseAddress(args[1])
			if err != nil {
				return err
			}
			ids, amounts, err := pairs(args[2], args[3])
			if err != nil {
				return err
			}
			return run(func(ctx tokenledger.Context, db *badgerdb.BadgerStore, l *multitoken.Ledger) error {
				if len(ids) == 1 && len(amounts) == 1 {
					return l.SafeTransferFrom(ctx, db, from, to, ids[0], amounts[0], []byte(data))
				}
				return l.SafeBatchTransferFrom(ctx, db, from, to, ids, amounts, []byte(data))
			})
		},
	}
	transfer.Flags().StringVar(&data, "data", "", "data passed to the recipient")

	var revoke bool
	approveAll := &cobra.Command{
		Use:   "approve-all <operator>",
		Short: "Allow an operator to transfer all tokens of the caller",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			operator, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			return run(func(ctx tokenledger.Context, db *badgerdb.BadgerStore, l *multitoken.Ledger) error {
				return l.SetApprovalForAll(ctx, db, operator, !revoke)
			})
		},
	}
	approveAll.Flags().BoolVar(&revoke, "revoke", false, "revoke instead of grant")

	cmd.AddCommand(
		mint,
		&cobra.Command{
			Use:   "burn <from> <ids> <amounts>",
			Short: "Destroy tokens, ids and amounts are comma separated",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				from, err := parseAddress(args[0])
				if err != nil {
					return err
				}
				ids, amounts, err := pairs(args[1], args[2])
				if err != nil {
					return err
				}
				return run(func(ctx tokenledger.Context, db *badgerdb.BadgerStore, l *multitoken.Ledger) error {
					if len(ids) == 1 && len(amounts) == 1 {
						return l.Burn(ctx, db, from, ids[0], amounts[0])
					}
					return l.BurnBatch(ctx, db, from, ids, amounts)
				})
			},
		},
		approveAll,
		transfer,
		&cobra.Command{
			Use:   "balance <account> <ids>",
			Short: "Print the balances of an account, ids are comma separated",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				account, err := parseAddress(args[0])
				if err != nil {
					return err
				}
				ids, err := parseUints(args[1])
				if err != nil {
					return err
				}
				accounts := make([]tokenledger.Address, len(ids))
				for i := range accounts {
					accounts[i] = account
				}
				return run(func(ctx tokenledger.Context, db *badgerdb.BadgerStore, l *multitoken.Ledger) error {
					balances, err := l.BalanceOfBatch(db, accounts, ids)
					if err != nil {
						return err
					}
					return env.print(map[string]interface{}{
						"account":  account,
						"ids":      ids,
						"balances": balances,
					})
				})
			},
		},
	)
	return cmd
}
