package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/errors"
	"github.com/iov-one/tokenledger/x/multitoken"
	"github.com/iov-one/tokenledger/x/nft"
)

type converter func(name string) tokenledger.Address

var converters = map[string]converter{
	"nft": func(name string) tokenledger.Address {
		return nft.LedgerCondition(name).Address()
	},
	"mt": func(name string) tokenledger.Address {
		return multitoken.LedgerCondition(name).Address()
	},
}

func converterNames() string {
	var names []string
	for n := range converters {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// addressCmd prints ledger addresses. Ledger addresses are derived from the
// ledger name, so they can be referenced in a genesis file before the
// ledger exists.
func addressCmd(env *environment) *cobra.Command {
	var header bool
	cmd := &cobra.Command{
		Use:   "address <kind> <name>...",
		Short: "Print the address of ledger instances",
		Long:  "Print the address of ledger instances. Available kinds are: " + converterNames(),
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			addrFn, ok := converters[args[0]]
			if !ok {
				return errors.Wrapf(errors.ErrInvalidInput, "unknown kind %q, available: %s", args[0], converterNames())
			}
			return printAddresses(env.out, addrFn, header, args[1:])
		},
	}
	cmd.Flags().BoolVar(&header, "header", true, "display header")
	return cmd
}

func printAddresses(out io.Writer, addr converter, header bool, names []string) error {
	w := tabwriter.NewWriter(out, 2, 0, 2, ' ', 0)
	if header {
		fmt.Fprintln(w, "name\taddress\thex")
	}
	for _, name := range names {
		a := addr(name)
		fmt.Fprintf(w, "%s\t%s\t%X\n", name, a, []byte(a))
	}
	return w.Flush()
}
