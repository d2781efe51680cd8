// Package config loads the benglang tool configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Dump styles understood by the parse command.
const (
	StylePretty = "pretty"
	StyleLitter = "litter"
	StyleSource = "source"
)

// Config holds the complete tool configuration.
type Config struct {
	Log  LogConfig  `toml:"log"`
	Dump DumpConfig `toml:"dump"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn or error.
	File  string `toml:"file"`  // Optional JSON log file, in addition to stderr.
}

// DumpConfig holds AST dump settings.
type DumpConfig struct {
	Style string `toml:"style"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log:  LogConfig{Level: "warn"},
		Dump: DumpConfig{Style: StylePretty},
	}
}

// Load reads the file at path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := cfg.decode(string(data)); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults.
func Parse(text string) (Config, error) {
	cfg := Default()
	if err := cfg.decode(text); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) decode(text string) error {
	md, err := toml.Decode(text, c)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return c.Validate()
}

// Validate checks the values that have a closed set of choices.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch c.Dump.Style {
	case StylePretty, StyleLitter, StyleSource:
	default:
		errs = append(errs, fmt.Errorf("invalid dump style %q", c.Dump.Style))
	}
	return errors.Join(errs...)
}

// SlogLevel converts the configured level name.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}
	return level, nil
}
