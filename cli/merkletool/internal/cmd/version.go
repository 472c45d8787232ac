package cmd

import (
	"github.com/pqledger/ledger-go/cli"
)

var versionCmd = cli.NewVersionCommand("merkletool")

func init() {
	RootCmd.AddCommand(versionCmd)
}
