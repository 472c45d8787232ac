package cli

import (
	"github.com/spf13/cobra"
)

// A treeCommand is used to create a command working on the
// tree named by its first argument.
type treeCommand struct {
	use     string
	short   string
	nargs   int
	runFunc RunFunc
}

var _ cobraCommand = (*treeCommand)(nil)

// NewTreeCommand constructs a command taking exactly nargs arguments,
// the first of which is the name of a tree. use is the usage line of
// the command, starting with its name.
func NewTreeCommand(use, short string, nargs int, runFunc RunFunc) *cobra.Command {
	treeCmd := &treeCommand{
		use:     use,
		short:   short,
		nargs:   nargs,
		runFunc: runFunc,
	}
	return treeCmd.Build()
}

// Build constructs the cobra.Command according to the
// treeCommand's settings.
func (treeCmd *treeCommand) Build() *cobra.Command {
	cmd := cobra.Command{
		Use:   treeCmd.use,
		Short: treeCmd.short,
		Long: treeCmd.short + `

The tree is stored in the directory configured in the store
section of the configuration file.`,
		Args: cobra.ExactArgs(treeCmd.nargs),
		RunE: treeCmd.runFunc,
	}
	return &cmd
}
