package main

import (
	"github.com/spf13/cobra"

	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/store/badgerdb"
	"github.com/iov-one/tokenledger/x/nft"
)

const flagLedger = "ledger"

func nftCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nft",
		Short: "Non-fungible token ledger",
	}
	ledger := cmd.PersistentFlags().String(flagLedger, "tokens", "name of the ledger instance")

	// run loads the ledger and passes it to fn together with the call
	// context.
	run := func(fn func(ctx tokenledger.Context, db *badgerdb.BadgerStore, l *nft.Ledger) error) error {
		ctx, err := env.context()
		if err != nil {
			return err
		}
		return env.withState(func(db *badgerdb.BadgerStore) error {
			l, err := nft.Load(db, *ledger, nil)
			if err != nil {
				return err
			}
			return fn(ctx, db, l)
		})
	}

	var revoke bool
	approveAll := &cobra.Command{
		Use:   "approve-all <operator>",
		Short: "Allow an operator to manage all tokens of the caller",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			operator, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			return run(func(ctx tokenledger.Context, db *badgerdb.BadgerStore, l *nft.Ledger) error {
				return l.SetApprovalForAll(ctx, db, operator, !revoke)
			})
		},
	}
	approveAll.Flags().BoolVar(&revoke, "revoke", false, "revoke instead of grant")

	var safe bool
	var data string
	transfer := &cobra.Command{
		Use:   "transfer <from> <to> <id>",
		Short: "Transfer a token",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			to, err := parseAddress(args[1])
			if err != nil {
				return err
			}
			id, err := parseUint(args[2])
			if err != nil {
				return err
			}
			return run(func(ctx tokenledger.Context, db *badgerdb.BadgerStore, l *nft.Ledger) error {
				if safe {
					return l.SafeTransferFrom(ctx, db, from, to, id, []byte(data))
				}
				return l.TransferFrom(ctx, db, from, to, id)
			})
		},
	}
	transfer.Flags().BoolVar(&safe, "safe", false, "run the recipient acceptance check")
	transfer.Flags().StringVar(&data, "data", "", "data passed to the recipient of a safe transfer")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "mint <to> <id>",
			Short: "Mint a new token",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				to, err := parseAddress(args[0])
				if err != nil {
					return err
				}
				id, err := parseUint(args[1])
				if err != nil {
					return err
				}
				return run(func(ctx tokenledger.Context, db *badgerdb.BadgerStore, l *nft.Ledger) error {
					return l.Mint(ctx, db, to, id)
				})
			},
		},
		&cobra.Command{
			Use:   "burn <id>",
			Short: "Destroy a token",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseUint(args[0])
				if err != nil {
					return err
				}
				return run(func(ctx tokenledger.Context, db *badgerdb.BadgerStore, l *nft.Ledger) error {
					return l.Burn(ctx, db, id)
				})
			},
		},
		&cobra.Command{
			Use:   "approve <spender> <id>",
			Short: "Allow a spender to transfer one token of the caller",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				spender, err := parseAddress(args[0])
				if err != nil {
					return err
				}
				id, err := parseUint(args[1])
				if err != nil {
					return err
				}
				return run(func(ctx tokenledger.Context, db *badgerdb.BadgerStore, l *nft.Ledger) error {
					return l.Approve(ctx, db, spender, id)
				})
			},
		},
		approveAll,
		transfer,
		&cobra.Command{
			Use:   "owner <id>",
			Short: "Print the owner and the approved spender of a token",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseUint(args[0])
				if err != nil {
					return err
				}
				return run(func(ctx tokenledger.Context, db *badgerdb.BadgerStore, l *nft.Ledger) error {
					owner, err := l.OwnerOf(db, id)
					if err != nil {
						return err
					}
					approved, err := l.GetApproved(db, id)
					if err != nil {
						return err
					}
					return env.print(map[string]interface{}{
						"id":       id,
						"owner":    owner,
						"approved": approved,
					})
				})
			},
		},
		&cobra.Command{
			Use:   "balance <account>",
			Short: "Print the number of tokens owned by an account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				account, err := parseAddress(args[0])
				if err != nil {
					return err
				}
				return run(func(ctx tokenledger.Context, db *badgerdb.BadgerStore, l *nft.Ledger) error {
					n, err := l.BalanceOf(db, account)
					if err != nil {
						return err
					}
					return env.print(map[string]interface{}{"account": account, "balance": n})
				})
			},
		},
		&cobra.Command{
			Use:   "uri <id>",
			Short: "Print the URI of a token",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseUint(args[0])
				if err != nil {
					return err
				}
				return run(func(ctx tokenledger.Context, db *badgerdb.BadgerStore, l *nft.Ledger) error {
					uri, err := l.TokenURI(db, id)
					if err != nil {
						return err
					}
					return env.print(map[string]interface{}{"id": id, "uri": uri})
				})
			},
		},
	)
	return cmd
}
