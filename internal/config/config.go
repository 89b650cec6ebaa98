// Package config loads the daemon configuration file.
//
// The file is YAML: server address, log settings, and the datasource
// blocks to register at boot. A datasource block is the declarative
// equivalent of `CREATE DATABASE <name> WITH ENGINE = '<engine>',
// PARAMETERS = {...}`.
package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/fedra-io/fedra/internal/errs"
	"github.com/fedra-io/fedra/internal/handler"
)

// DefaultAddr is the API listen address when the file does not set one.
const DefaultAddr = ":8490"

// Config is the full daemon configuration.
type Config struct {
	Server      ServerConfig `yaml:"server"`
	Log         LogConfig    `yaml:"log"`
	Datasources []Datasource `yaml:"datasources"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Datasource is one datasource block to register at boot.
type Datasource struct {
	Name       string         `yaml:"name"`
	Engine     string         `yaml:"engine"`
	Parameters handler.Params `yaml:"parameters"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: DefaultAddr},
		Log:    LogConfig{Level: "info", Format: "json"},
	}
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidConfig, fmt.Sprintf("cannot read config file %s", path), err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidConfig, fmt.Sprintf("cannot parse config file %s", path), err)
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	seen := make(map[string]bool, len(c.Datasources))
	for i, ds := range c.Datasources {
		if ds.Name == "" {
			return errs.Newf(errs.ErrKindInvalidConfig, "datasource #%d has no name", i+1)
		}
		if ds.Engine == "" {
			return errs.Newf(errs.ErrKindInvalidConfig, "datasource %q has no engine", ds.Name)
		}
		if seen[ds.Name] {
			return errs.Newf(errs.ErrKindInvalidConfig, "duplicate datasource name %q", ds.Name)
		}
		seen[ds.Name] = true
	}
	return nil
}
