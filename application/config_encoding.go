package application

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/pqledger/ledger-go/utils"
)

// ConfigLoader provides an interface for implementing
// different configuration encodings.
type ConfigLoader interface {
	Encode(conf AppConfig) error
	Decode(conf AppConfig) error
}

// configEncodings maps the name of an encoding to its loader.
var configEncodings = map[string]ConfigLoader{
	"toml": new(TomlLoader),
}

// newConfigLoader returns the ConfigLoader of the given encoding.
// An empty encoding selects TOML.
func newConfigLoader(encoding string) (ConfigLoader, error) {
	if encoding == "" {
		encoding = "toml"
	}
	loader, ok := configEncodings[encoding]
	if !ok {
		return nil, fmt.Errorf("Unsupported config encoding %q", encoding)
	}
	return loader, nil
}

// TomlLoader implements a ConfigLoader for toml-encoded configurations.
type TomlLoader struct{}

var _ ConfigLoader = (*TomlLoader)(nil)

// Encode saves the given configuration conf in toml encoding.
// It never overwrites an existing file.
func (ld *TomlLoader) Encode(conf AppConfig) error {
	var confBuf bytes.Buffer
	if err := toml.NewEncoder(&confBuf).Encode(conf); err != nil {
		return err
	}
	return utils.WriteFile(conf.GetPath(), confBuf.Bytes(), 0644)
}

// Decode reads a configuration from the toml-encoded file at
// conf.GetPath(). Keys of the file which conf doesn't know
// are reported as an error.
func (ld *TomlLoader) Decode(conf AppConfig) error {
	md, err := toml.DecodeFile(conf.GetPath(), conf)
	if err != nil {
		return fmt.Errorf("Failed to load config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("Failed to load config: unknown key %q", undecoded[0].String())
	}
	return nil
}
