// Package config loads the optional pipu config file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml"
	tomlv2 "github.com/pelletier/go-toml/v2"

	"github.com/Abeautifulsnow/pipu/internal/messages"
)

// Config holds the on-disk settings. Flags override every field.
type Config struct {
	// Python is the interpreter to target instead of the resolved default.
	Python string `toml:"python"`
	// AsyncUpgrade upgrades packages concurrently, as if -a were passed.
	AsyncUpgrade bool `toml:"async_upgrade"`
}

// DefaultPath returns the conventional config location under the user's
// home directory.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf(messages.ConfigHomeFmt, err)
	}
	return filepath.Join(home, ".config", "pipu", "config.toml"), nil
}

// Load reads the config at path. A missing file is not an error and yields
// the zero config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigReadFmt, path, err)
	}
	return parse(data, path)
}

// parse validates syntax first so syntax errors surface as such, then
// decodes strictly to catch misspelled keys.
func parse(data []byte, source string) (*Config, error) {
	if _, err := toml.LoadBytes(data); err != nil {
		return nil, fmt.Errorf(messages.ConfigSyntaxFmt, source, err)
	}

	var cfg Config
	decoder := tomlv2.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigDecodeFmt, source, err)
	}
	return &cfg, nil
}
