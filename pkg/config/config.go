// Package config loads the optional assembler settings file. Both TOML and
// YAML are accepted; the format is picked by file extension.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultExtension is the bytecode file extension used when neither the
// config file nor the command line names an output path.
const DefaultExtension = ".sbc"

// Config holds the assembler settings. Zero values mean "derive from the
// input file" for paths and "assemble" for the token dump.
type Config struct {
	Output     string `toml:"output" yaml:"output"`           // fixed output path
	Extension  string `toml:"extension" yaml:"extension"`     // output extension for derived paths
	DumpTokens bool   `toml:"dump_tokens" yaml:"dump_tokens"` // print tokens instead of assembling
}

// Default returns the configuration used when no config file is present.
func Default() Config {
	return Config{Extension: DefaultExtension}
}

// Load reads path and parses it according to its extension.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q (want .toml, .yaml or .yml)", ext)
	}

	if cfg.Extension == "" {
		cfg.Extension = DefaultExtension
	}
	return cfg, nil
}

// Discover looks for a stackasm config file in dir and loads the first one
// present. A directory without one is not an error; defaults apply.
func Discover(dir string) (Config, error) {
	for _, name := range []string{"stackasm.toml", "stackasm.yaml", "stackasm.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}
