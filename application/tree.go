package application

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pqledger/ledger-go/merkletree"
	"github.com/pqledger/ledger-go/storage/kv"
	"github.com/pqledger/ledger-go/storage/kv/cachekv"
	"github.com/pqledger/ledger-go/storage/kv/leveldbkv"
	"github.com/pqledger/ledger-go/storage/kv/pebblekv"
)

// ErrInvalidTreeName is returned for a tree name which can't be
// used as a directory name.
var ErrInvalidTreeName = errors.New("[application] Invalid tree name")

// OpenTree opens the tree called name in the store described by conf,
// creating its database if needed.
func OpenTree(conf *Config, name string, opts ...merkletree.Option) (*merkletree.Tree, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTreeName, name)
	}
	if conf.Store == nil {
		return nil, fmt.Errorf("Missing store configuration")
	}
	th, err := conf.TreeHasher()
	if err != nil {
		return nil, err
	}
	db, err := OpenStore(conf.Store, name)
	if err != nil {
		return nil, err
	}
	t, err := merkletree.Open(name, db, th, opts...)
	if err != nil {
		db.Close()
		return nil, err
	}
	return t, nil
}

// OpenStore opens the database of the tree called name.
func OpenStore(conf *StoreConfig, name string) (kv.DB, error) {
	path := filepath.Join(conf.Dir, name)
	var db kv.DB
	var err error
	switch conf.Backend {
	case LevelDBBackend, "":
		db, err = leveldbkv.OpenDB(path)
	case PebbleBackend:
		db, err = pebblekv.OpenDB(path)
	default:
		return nil, fmt.Errorf("Unknown store backend %q", conf.Backend)
	}
	if err != nil {
		return nil, err
	}
	if conf.CacheSize <= 0 {
		return db, nil
	}
	cached, err := cachekv.Wrap(db, conf.CacheSize)
	if err != nil {
		db.Close()
		return nil, err
	}
	return cached, nil
}
