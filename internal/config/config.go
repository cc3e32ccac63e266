// Package config loads tool configuration from an optional YAML file
// merged with LOOPFIELD__-prefixed environment variables. CLI flags
// override both.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the environment namespace, e.g. LOOPFIELD__DEGREE=3 or
// LOOPFIELD__LOG__LEVEL=debug.
const EnvPrefix = "LOOPFIELD__"

// LogCfg selects logger format and level.
type LogCfg struct {
	Level string `koanf:"level"`
	JSON  bool   `koanf:"json"`
}

// Config holds every tunable of the two binaries. Degree and noise
// level are the only pipeline knobs; the rest is I/O plumbing.
type Config struct {
	Degree     int     `koanf:"degree"`
	NoiseLevel float64 `koanf:"noise_level"`
	Seed       uint64  `koanf:"seed"`
	BundlePath string  `koanf:"bundle_path"`
	ChartPath  string  `koanf:"chart_path"`
	Log        LogCfg  `koanf:"log"`
}

// Load merges the YAML file at path (skipped when absent) with
// environment variables, then applies defaults and validates. An empty
// path loads environment and defaults only.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	_ = k.Load(env.Provider(EnvPrefix, "__", nil), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyDefaults(c *Config) {
	if c.Degree == 0 {
		c.Degree = 4
	}
	if c.NoiseLevel == 0 {
		c.NoiseLevel = 0.05
	}
	if c.BundlePath == "" {
		c.BundlePath = "field_model.json"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c Config) validate() error {
	if c.Degree < 1 {
		return fmt.Errorf("degree must be >= 1, got %d", c.Degree)
	}
	if c.NoiseLevel < 0 {
		return fmt.Errorf("noise_level must be >= 0, got %g", c.NoiseLevel)
	}
	return nil
}
