// Package cli provides the builders of the cobra commands shared by the
// command-line tools of this module.
package cli

import (
	"github.com/spf13/cobra"
)

// cobraCommand is used to implement any type of cobra command
// for any of the command-line tools.
type cobraCommand interface {
	Build() *cobra.Command
}

// A RunFunc implements the behaviour of a command.
type RunFunc func(cmd *cobra.Command, args []string) error
