package cmd

import (
	"fmt"

	"github.com/pqledger/ledger-go/cli"
	"github.com/spf13/cobra"
)

var (
	putCmd = cli.NewTreeCommand("put <tree> <key> <data>",
		"Set the data of a key and print the new root hash.", 3, putRunFunc)
	getCmd = cli.NewTreeCommand("get <tree> <key>",
		"Print the data of a key.", 2, getRunFunc)
	infoCmd = cli.NewTreeCommand("info <tree>",
		"Print the root hash, leaf count and depth of a tree.", 1, infoRunFunc)
	clearCmd = cli.NewTreeCommand("clear <tree>",
		"Remove every key of a tree.", 1, clearRunFunc)
)

func init() {
	RootCmd.AddCommand(putCmd, getCmd, infoCmd, clearCmd)
}

func putRunFunc(cmd *cobra.Command, args []string) (err error) {
	s, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	defer func() { err = s.close(err) }()

	if err := s.tree.AddOrUpdateData([]byte(args[1]), []byte(args[2])); err != nil {
		return err
	}
	if err := s.tree.FlushToDisk(); err != nil {
		return err
	}
	root, _, err := s.tree.RootHash()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), root)
	return nil
}

func getRunFunc(cmd *cobra.Command, args []string) (err error) {
	s, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	defer func() { err = s.close(err) }()

	data, found, err := s.tree.GetData([]byte(args[1]))
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("Key %q not found in %s", args[1], args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func infoRunFunc(cmd *cobra.Command, args []string) (err error) {
	s, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	defer func() { err = s.close(err) }()

	root, ok, err := s.tree.RootHash()
	if err != nil {
		return err
	}
	leaves, err := s.tree.NumLeaves()
	if err != nil {
		return err
	}
	depth, err := s.tree.Depth()
	if err != nil {
		return err
	}
	rootStr := "(empty)"
	if ok {
		rootStr = root.String()
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "tree:  ", s.tree.Name())
	fmt.Fprintln(out, "root:  ", rootStr)
	fmt.Fprintln(out, "leaves:", leaves)
	fmt.Fprintln(out, "depth: ", depth)
	return nil
}

func clearRunFunc(cmd *cobra.Command, args []string) (err error) {
	s, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	defer func() { err = s.close(err) }()
	return s.tree.Clear()
}
