package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures the knobs cfadump shares across its subcommands. It is
// loaded from an optional YAML file; no command-line flag overrides its
// fields.
type Config struct {
	// Format selects the dump format: "text" (default) or "json".
	Format string `yaml:"format"`
	// IncludeSynthetic controls whether <start>/<leave>/<raise>/<return>
	// nodes are printed alongside AST-backed ones.
	IncludeSynthetic bool `yaml:"include_synthetic"`
}

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Format:           "text",
		IncludeSynthetic: true,
	}
}

// Normalize fills in any zero-valued fields left by a partial YAML file.
func (c *Config) Normalize() error {
	switch c.Format {
	case "":
		c.Format = "text"
	case "text", "json":
	default:
		return fmt.Errorf("cfadump: unknown format %q", c.Format)
	}
	return nil
}

// LoadConfig reads and normalizes a YAML config file at path. A missing file
// is not an error: DefaultConfig is returned as-is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("cfadump: read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("cfadump: parse config %s: %w", path, err)
	}
	if err := cfg.Normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
