package application

import (
	"fmt"
	"os"

	"github.com/pqledger/ledger-go/crypto/hasher"
	"github.com/pqledger/ledger-go/crypto/hasher/blake2bhasher"
	"github.com/pqledger/ledger-go/crypto/hasher/sha3hasher"
	"github.com/pqledger/ledger-go/utils"

	// registered hashers
	_ "github.com/pqledger/ledger-go/crypto/hasher/sha256hasher"
)

// Supported store backends.
const (
	LevelDBBackend = "leveldb"
	PebbleBackend  = "pebble"
)

// AppConfig provides an abstraction of the
// underlying encoding format for the configs.
type AppConfig interface {
	Load(file, encoding string) error
	Save() error
	GetPath() string
}

// A StoreConfig describes where and how the trees are stored.
// Every tree gets its own database, in a directory named after
// the tree under Dir.
type StoreConfig struct {
	// Backend is either "leveldb" (the default) or "pebble".
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
	// CacheSize is the number of values kept in a read cache
	// in front of the database; 0 disables the cache.
	CacheSize int `toml:"cache_size,omitempty"`
}

// A HasherConfig selects the hash function of the trees.
type HasherConfig struct {
	// Name is a registered hasher, SHA3-256 by default.
	Name string `toml:"name,omitempty"`
	// KeyPath is a file holding the key of a keyed BLAKE2b hasher.
	KeyPath string `toml:"key_path,omitempty"`
}

// A Config contains the configuration values of the tree tools,
// read from a configuration file. Relative paths in the file are
// resolved against the directory of the file.
type Config struct {
	Path   string        `toml:"-"`
	Logger *LoggerConfig `toml:"logger"`
	Store  *StoreConfig  `toml:"store"`
	Hasher *HasherConfig `toml:"hasher,omitempty"`

	loader  ConfigLoader
	hashKey []byte
}

var _ AppConfig = (*Config)(nil)

// NewConfig initializes a configuration which is saved to file.
func NewConfig(file string, logger *LoggerConfig, store *StoreConfig,
	hasherConf *HasherConfig) *Config {
	return &Config{
		Path:   file,
		Logger: logger,
		Store:  store,
		Hasher: hasherConf,
	}
}

// GetPath returns the path of the configuration file.
func (conf *Config) GetPath() string {
	return conf.Path
}

// Load reads the configuration file with the given encoding,
// validates it and loads the hasher key if there is one.
func (conf *Config) Load(file, encoding string) error {
	loader, err := newConfigLoader(encoding)
	if err != nil {
		return err
	}
	conf.Path = file
	conf.loader = loader
	if err := loader.Decode(conf); err != nil {
		return err
	}

	if conf.Store == nil {
		return fmt.Errorf("Missing store section in %s", file)
	}
	switch conf.Store.Backend {
	case "":
		conf.Store.Backend = LevelDBBackend
	case LevelDBBackend, PebbleBackend:
	default:
		return fmt.Errorf("Unknown store backend %q", conf.Store.Backend)
	}
	if conf.Store.Dir == "" {
		return fmt.Errorf("Missing store directory in %s", file)
	}
	if conf.Store.CacheSize < 0 {
		return fmt.Errorf("Cache size must not be negative (got %d)", conf.Store.CacheSize)
	}
	conf.Store.Dir = utils.ResolvePath(conf.Store.Dir, file)
	if conf.Logger != nil && conf.Logger.Path != "" {
		conf.Logger.Path = utils.ResolvePath(conf.Logger.Path, file)
	}

	if conf.Hasher == nil {
		conf.Hasher = &HasherConfig{}
	}
	if conf.Hasher.KeyPath == "" {
		if conf.Hasher.Name == "" {
			conf.Hasher.Name = sha3hasher.SHA3Hasher
		}
		_, err := hasher.Hasher(conf.Hasher.Name)
		return err
	}

	switch conf.Hasher.Name {
	case "":
		conf.Hasher.Name = blake2bhasher.KeyedBLAKE2bHasher
	case blake2bhasher.KeyedBLAKE2bHasher:
	default:
		return fmt.Errorf("Hasher %s doesn't take a key", conf.Hasher.Name)
	}
	conf.Hasher.KeyPath = utils.ResolvePath(conf.Hasher.KeyPath, file)
	key, err := os.ReadFile(conf.Hasher.KeyPath)
	if err != nil {
		return fmt.Errorf("Cannot read hasher key: %w", err)
	}
	if len(key) == 0 {
		return fmt.Errorf("Empty hasher key in %s", conf.Hasher.KeyPath)
	}
	if _, err := blake2bhasher.NewKeyed(key); err != nil {
		return err
	}
	conf.hashKey = key
	return nil
}

// Save writes the configuration to conf.Path. It refuses to
// overwrite an existing file.
func (conf *Config) Save() error {
	if conf.loader == nil {
		loader, err := newConfigLoader("")
		if err != nil {
			return err
		}
		conf.loader = loader
	}
	return conf.loader.Encode(conf)
}

// TreeHasher returns the hasher selected by a loaded configuration.
func (conf *Config) TreeHasher() (hasher.TreeHasher, error) {
	if conf.Hasher == nil {
		return sha3hasher.New(), nil
	}
	if conf.hashKey != nil {
		return blake2bhasher.NewKeyed(conf.hashKey)
	}
	return hasher.Hasher(conf.Hasher.Name)
}
