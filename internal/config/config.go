package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration.
type Config struct {
	Format  Format
	Options Options
}

// Options represents generation options.
type Options struct {
	Accessors    bool     // Synthesise getters and setters for every class
	IncludeTypes []string // If set, only these classes/interfaces are generated
	ExcludeTypes []string // Classes/interfaces that are never generated
}

// fileConfig is the on-disk shape of a config file. Pointer fields tell
// "not set" apart from the zero value when merging over defaults.
type fileConfig struct {
	Format struct {
		Newline          *string `yaml:"newline" json:"newline" toml:"newline"`
		Indent           *string `yaml:"indent" json:"indent" toml:"indent"`
		IndentEmptyLines *bool   `yaml:"indentEmptyLines" json:"indentEmptyLines" toml:"indentEmptyLines"`
	} `yaml:"format" json:"format" toml:"format"`
	Options struct {
		Accessors    *bool    `yaml:"accessors" json:"accessors" toml:"accessors"`
		IncludeTypes []string `yaml:"includeTypes" json:"includeTypes" toml:"includeTypes"`
		ExcludeTypes []string `yaml:"excludeTypes" json:"excludeTypes" toml:"excludeTypes"`
	} `yaml:"options" json:"options" toml:"options"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Format:  DefaultFormat(),
		Options: DefaultOptions(),
	}
}

// LoadFile loads configuration from a file (YAML, JSON or TOML based on extension).
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading config file")
	}

	ext := strings.ToLower(filepath.Ext(path))

	var loaded fileConfig
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return errors.Wrap(err, "parsing YAML config")
		}
	case ".json":
		if err := json.Unmarshal(data, &loaded); err != nil {
			return errors.Wrap(err, "parsing JSON config")
		}
	case ".toml":
		if err := toml.Unmarshal(data, &loaded); err != nil {
			return errors.Wrap(err, "parsing TOML config")
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			if err := json.Unmarshal(data, &loaded); err != nil {
				return errors.Newf("unable to parse %s as YAML or JSON", path)
			}
		}
	}

	c.merge(&loaded)

	return nil
}

// merge merges the loaded config into the current config.
func (c *Config) merge(loaded *fileConfig) {
	if loaded.Format.Newline != nil {
		c.Format.Newline = ParseNewline(*loaded.Format.Newline)
	}
	if loaded.Format.Indent != nil {
		c.Format.IndentString = *loaded.Format.Indent
	}
	if loaded.Format.IndentEmptyLines != nil {
		c.Format.IndentEmptyLines = *loaded.Format.IndentEmptyLines
	}

	if loaded.Options.Accessors != nil {
		c.Options.Accessors = *loaded.Options.Accessors
	}
	if loaded.Options.IncludeTypes != nil {
		c.Options.IncludeTypes = loaded.Options.IncludeTypes
	}
	if loaded.Options.ExcludeTypes != nil {
		c.Options.ExcludeTypes = loaded.Options.ExcludeTypes
	}
}

// ShouldIncludeType reports whether a class or interface passes the include
// and exclude lists. An empty include list admits every name.
func (c *Config) ShouldIncludeType(name string) bool {
	if len(c.Options.IncludeTypes) > 0 && !slices.Contains(c.Options.IncludeTypes, name) {
		return false
	}
	return !slices.Contains(c.Options.ExcludeTypes, name)
}
