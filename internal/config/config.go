// Package config loads reefdb's on-disk YAML configuration.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is reefdb's on-disk configuration shape.
type Config struct {
	StorePath string `yaml:"store_path"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// defaults mirrors what a zero-value CLI invocation (no --config flag) runs
// with: a local store file, info-level text logging.
func defaults() Config {
	return Config{
		StorePath: "./reefdb.db",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads and strictly decodes the YAML config file at path. An unknown
// key is a decode error rather than being silently ignored, the same
// strictness sqldef's generator config loader uses. An empty path returns
// the defaults without touching the filesystem.
func Load(path string) (Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
