package application

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pqledger/ledger-go/crypto/hasher/blake2bhasher"
	"github.com/pqledger/ledger-go/crypto/hasher/sha256hasher"
	"github.com/pqledger/ledger-go/crypto/hasher/sha3hasher"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return file
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.toml")
	conf := NewConfig(file,
		&LoggerConfig{Environment: "development", Path: "trees.log"},
		&StoreConfig{Backend: PebbleBackend, Dir: "trees", CacheSize: 128},
		&HasherConfig{Name: sha256hasher.SHA256Hasher})
	if err := conf.Save(); err != nil {
		t.Fatal(err)
	}
	if err := conf.Save(); err == nil {
		t.Fatal("Save must not overwrite an existing file")
	}

	var loaded Config
	if err := loaded.Load(file, "toml"); err != nil {
		t.Fatal(err)
	}
	if loaded.GetPath() != file {
		t.Error("Unexpected path", loaded.GetPath())
	}
	if *loaded.Store != (StoreConfig{Backend: PebbleBackend, Dir: filepath.Join(dir, "trees"), CacheSize: 128}) {
		t.Error("Unexpected store config", *loaded.Store)
	}
	if loaded.Logger.Path != filepath.Join(dir, "trees.log") || loaded.Logger.Environment != "development" {
		t.Error("Unexpected logger config", *loaded.Logger)
	}
	th, err := loaded.TreeHasher()
	if err != nil {
		t.Fatal(err)
	}
	if th.ID() != sha256hasher.SHA256Hasher {
		t.Error("Unexpected hasher", th.ID())
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	file := writeConfig(t, `
[store]
dir = "/var/lib/trees"
`)
	var conf Config
	if err := conf.Load(file, ""); err != nil {
		t.Fatal(err)
	}
	if conf.Store.Backend != LevelDBBackend || conf.Store.Dir != "/var/lib/trees" || conf.Store.CacheSize != 0 {
		t.Error("Unexpected store config", *conf.Store)
	}
	th, err := conf.TreeHasher()
	if err != nil {
		t.Fatal(err)
	}
	if th.ID() != sha3hasher.SHA3Hasher {
		t.Error("Unexpected hasher", th.ID())
	}
}

func TestLoadKeyedHasher(t *testing.T) {
	file := writeConfig(t, `
[store]
dir = "trees"

[hasher]
key_path = "hash.key"
`)
	key := []byte("0123456789abcdef0123456789abcdef")
	if err := os.WriteFile(filepath.Join(filepath.Dir(file), "hash.key"), key, 0600); err != nil {
		t.Fatal(err)
	}
	var conf Config
	if err := conf.Load(file, "toml"); err != nil {
		t.Fatal(err)
	}
	th, err := conf.TreeHasher()
	if err != nil {
		t.Fatal(err)
	}
	if th.ID() != blake2bhasher.KeyedBLAKE2bHasher {
		t.Fatal("Unexpected hasher", th.ID())
	}
	want, err := blake2bhasher.NewKeyed(key)
	if err != nil {
		t.Fatal(err)
	}
	if string(th.Digest([]byte("abc"))) != string(want.Digest([]byte("abc"))) {
		t.Fatal("The hasher doesn't use the key of the file")
	}
}

func TestLoadBadConfig(t *testing.T) {
	for name, tc := range map[string]struct {
		content string
		errMsg  string
	}{
		"no store":    {``, "Missing store"},
		"no dir":      {"[store]\nbackend = \"pebble\"\n", "Missing store directory"},
		"bad backend": {"[store]\nbackend = \"bolt\"\ndir = \"x\"\n", "Unknown store backend"},
		"bad cache":   {"[store]\ndir = \"x\"\ncache_size = -1\n", "Cache size"},
		"unknown key": {"[store]\ndir = \"x\"\ncolor = \"red\"\n", "unknown key"},
		"bad hasher":  {"[store]\ndir = \"x\"\n[hasher]\nname = \"MD5\"\n", "MD5"},
		"unkeyed":     {"[store]\ndir = \"x\"\n[hasher]\nname = \"SHA3-256\"\nkey_path = \"k\"\n", "doesn't take a key"},
		"missing key": {"[store]\ndir = \"x\"\n[hasher]\nkey_path = \"missing.key\"\n", "Cannot read hasher key"},
		"not toml":    {"[store\n", "Failed to load config"},
	} {
		var conf Config
		err := conf.Load(writeConfig(t, tc.content), "toml")
		if err == nil || !strings.Contains(err.Error(), tc.errMsg) {
			t.Errorf("%s: expect an error containing %q, got %v", name, tc.errMsg, err)
		}
	}

	var conf Config
	if err := conf.Load(writeConfig(t, "[store]\ndir = \"x\"\n"), "yaml"); err == nil {
		t.Error("Expect an error for an unsupported encoding")
	}
}
