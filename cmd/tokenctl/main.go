/*
Command tokenctl deploys and drives token ledgers kept in a local badger
database.

The state lives under --home. Every mutating command is executed as the
account given with --caller, which can also be set with TOKENCTL_CALLER or
in the config.toml file of the home directory.
*/
package main

import (
	"fmt"
	"os"

	"github.com/iov-one/tokenledger/errors"
)

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error (code %d): %s\n", errors.Code(err), err)
		os.Exit(1)
	}
}
