// Package cmd implements the CLI commands of merkletool.
package cmd

import (
	"github.com/pqledger/ledger-go/cli"
)

// RootCmd represents the base "merkletool" command when called without any subcommands.
var RootCmd = cli.NewRootCommand("merkletool",
	"Inspect and edit persistent merkle trees",
	`merkletool stores key/data pairs in named merkle trees and prints
their root hashes.

Run "merkletool init" first to create a configuration file.`)
