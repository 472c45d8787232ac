package cmd

import (
	"fmt"

	"github.com/pqledger/ledger-go/application"
	"github.com/pqledger/ledger-go/merkletree"
	"github.com/spf13/cobra"
)

const configMissingUsage = `
Couldn't load the config-file.

To create a valid config, run
  merkletool init
this creates a config.toml file in the current working directory.

If you prefer the config-file to be named or stored somewhere different you can
specify where to look for the config with the --config flag. For example:
  merkletool init --dir /etc/merkletool/
  merkletool info accounts --config /etc/merkletool/config.toml
`

// A session is a tree opened by a command, with its logger.
type session struct {
	tree   *merkletree.Tree
	logger *application.Logger
}

func openSession(cmd *cobra.Command, name string) (*session, error) {
	file := cmd.Flag("config").Value.String()
	conf := &application.Config{}
	if err := conf.Load(file, "toml"); err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), configMissingUsage)
		return nil, err
	}
	logger, err := application.NewLogger(conf.Logger)
	if err != nil {
		return nil, err
	}
	tree, err := application.OpenTree(conf, name, merkletree.WithLogger(logger.Sugar()))
	if err != nil {
		logger.Error("Cannot open tree", "tree", name, "error", err)
		return nil, err
	}
	return &session{tree: tree, logger: logger}, nil
}

// close flushes and closes the tree. err is the error of the command,
// which takes precedence.
func (s *session) close(err error) error {
	if err != nil {
		if rerr := s.tree.RevertUnsavedChanges(); rerr != nil {
			s.logger.Error("Cannot revert tree", "tree", s.tree.Name(), "error", rerr)
		}
	}
	if cerr := s.tree.Close(); cerr != nil && err == nil {
		err = cerr
	}
	s.logger.Sync()
	return err
}
