package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/schuko/tracing"
)

// Config holds the settings of the command line tool. Command line flags
// override settings from a config file.
type Config struct {
	TraceLevel   string `toml:"trace_level"` // debug, info or error
	Format       string `toml:"format"`      // tree or yaml
	ASCII        bool   `toml:"ascii"`       // ASCII tree guides
	Color        bool   `toml:"color"`       // colored node kinds
	LenientTempo bool   `toml:"lenient_tempo"`
}

// Output formats.
const (
	FormatTree = "tree"
	FormatYAML = "yaml"
)

func defaultConfig() *Config {
	return &Config{
		TraceLevel: "error",
		Format:     FormatTree,
	}
}

// configLocations are searched if no config file is given.
func configLocations() []string {
	locations := []string{"./scoretree.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".config", "scoretree", "config.toml"))
	}
	return locations
}

// loadConfig reads a TOML config file. If path is empty, the default
// locations are tried; if none of them exists, the defaults are used.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		for _, p := range configLocations() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
		if path == "" {
			return cfg, nil
		}
	}
	path = os.ExpandEnv(path)
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	switch cfg.Format {
	case FormatTree, FormatYAML:
	default:
		return fmt.Errorf("unknown output format %q", cfg.Format)
	}
	if _, err := traceLevel(cfg.TraceLevel); err != nil {
		return err
	}
	return nil
}

// traceLevel maps a config value to a trace level.
func traceLevel(s string) (tracing.TraceLevel, error) {
	switch strings.ToLower(s) {
	case "debug":
		return tracing.LevelDebug, nil
	case "info":
		return tracing.LevelInfo, nil
	case "error", "":
		return tracing.LevelError, nil
	}
	return tracing.LevelError, fmt.Errorf("unknown trace level %q", s)
}
