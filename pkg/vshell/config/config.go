// Package config loads vshell settings from a YAML file, a .env file and
// the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConfigFileName is looked up in the working directory when no path is given.
const ConfigFileName = "vshell.yaml"

// Environment variables that override file values.
const (
	EnvStateFile = "VSHELL_STATE_FILE"
	EnvLogLevel  = "VSHELL_LOG_LEVEL"
	EnvColor     = "VSHELL_COLOR"
	EnvBanner    = "VSHELL_BANNER"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Config struct {
	// StateFile is where the snapshot is persisted. Empty disables
	// persistence. A .yaml or .yml extension selects YAML, anything else JSON.
	StateFile    string `yaml:"state_file"`
	LogLevel     string `yaml:"log_level"`
	Color        string `yaml:"color"`
	Banner       bool   `yaml:"banner"`
	MaxTreeDepth int    `yaml:"max_tree_depth"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		StateFile:    DefaultStateFile(),
		LogLevel:     "warn",
		Color:        ColorAuto,
		Banner:       true,
		MaxTreeDepth: 64,
	}
}

// DefaultStateFile is filesystem.json under the user config directory, or
// in the working directory when that cannot be determined.
func DefaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "filesystem.json"
	}
	return filepath.Join(dir, "vshell", "filesystem.json")
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any variables lookup knows about.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvStateFile); ok {
		cfg.StateFile = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvColor); ok && v != "" {
		cfg.Color = v
	}
	if v, ok := lookup(EnvBanner); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBanner, err)
		}
		cfg.Banner = b
	}
	return nil
}

// Resolve builds the effective configuration. A missing file is only an
// error when path was given explicitly. Variables from a .env file in the
// working directory are loaded first and never override the real
// environment.
func Resolve(path string) (*Config, error) {
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		path = ConfigFileName
	}

	cfg, err := Load(path)
	switch {
	case errors.Is(err, ErrConfigNotFound) && !explicit:
		cfg = Default()
	case err != nil:
		return nil, err
	}

	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", c.Color)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.MaxTreeDepth < 0 {
		return fmt.Errorf("max_tree_depth must not be negative, got %d", c.MaxTreeDepth)
	}
	return nil
}
