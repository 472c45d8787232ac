package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/pqledger/ledger-go/application"
	"github.com/pqledger/ledger-go/cli"
	"github.com/pqledger/ledger-go/crypto"
	"github.com/pqledger/ledger-go/crypto/hasher/sha3hasher"
	"github.com/pqledger/ledger-go/utils"
	"github.com/spf13/cobra"
)

const hashKeyFile = "hash.key"

var initCmd = cli.NewInitCommand("merkletool", initRunFunc)

func init() {
	RootCmd.AddCommand(initCmd)
	initCmd.Flags().StringP("dir", "d", ".", "Location of directory for storing generated files")
	initCmd.Flags().StringP("backend", "b", application.LevelDBBackend,
		"Store backend of the trees, leveldb or pebble")
	initCmd.Flags().BoolP("keyed", "k", false, "Generate a random key and hash the trees with keyed BLAKE2b")
}

func initRunFunc(cmd *cobra.Command, args []string) error {
	dir := cmd.Flag("dir").Value.String()
	backend := cmd.Flag("backend").Value.String()
	keyed, err := cmd.Flags().GetBool("keyed")
	if err != nil {
		return err
	}
	switch backend {
	case application.LevelDBBackend, application.PebbleBackend:
	default:
		return fmt.Errorf("Unknown store backend %q", backend)
	}

	hasherConf := &application.HasherConfig{Name: sha3hasher.SHA3Hasher}
	if keyed {
		if err := mkHashKey(filepath.Join(dir, hashKeyFile)); err != nil {
			return err
		}
		hasherConf = &application.HasherConfig{KeyPath: hashKeyFile}
	}

	file := filepath.Join(dir, "config.toml")
	conf := application.NewConfig(file,
		&application.LoggerConfig{
			Environment: "production",
			Path:        "merkletool.log",
		},
		&application.StoreConfig{
			Backend: backend,
			Dir:     "trees",
		},
		hasherConf)
	if err := conf.Save(); err != nil {
		return fmt.Errorf("Couldn't save config: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", file)
	return nil
}

func mkHashKey(file string) error {
	key, err := crypto.MakeRand()
	if err != nil {
		return err
	}
	return utils.WriteFile(file, key, 0600)
}
