// Executable merkletool inspects and edits the merkle trees of a store.
package main

import (
	"github.com/pqledger/ledger-go/cli"
	"github.com/pqledger/ledger-go/cli/merkletool/internal/cmd"
)

func main() {
	cli.ExecuteRoot(cmd.RootCmd)
}
