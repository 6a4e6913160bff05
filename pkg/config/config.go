// Package config loads the tabhost application configuration with the usual
// precedence: built-in defaults, then an optional YAML file, then TABHOST_*
// environment variables.
package config

import (
	"time"

	"github.com/tabhost/tabhost/engine/extension"
)

// Config is the complete tabhost configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"     yaml:"server"     validate:"required"`
	Extensions ExtensionsConfig `koanf:"extensions" yaml:"extensions" validate:"required"`
	Runtime    RuntimeConfig    `koanf:"runtime"    yaml:"runtime"    validate:"required"`
}

// ServerConfig contains the HTTP API server configuration. Environment
// overrides derive from the koanf paths: TABHOST_SERVER_PORT maps to
// server.port, and so on.
type ServerConfig struct {
	Host    string        `koanf:"host"    yaml:"host"    validate:"required"`
	Port    int           `koanf:"port"    yaml:"port"    validate:"min=1,max=65535"`
	Timeout time.Duration `koanf:"timeout" yaml:"timeout"`
}

// ExtensionsConfig controls manifest discovery and processing.
type ExtensionsConfig struct {
	Dir             string   `koanf:"dir"              yaml:"dir"              validate:"required"`
	Include         []string `koanf:"include"          yaml:"include"`
	Exclude         []string `koanf:"exclude"          yaml:"exclude"`
	Strict          bool     `koanf:"strict"           yaml:"strict"`
	Watch           bool     `koanf:"watch"            yaml:"watch"`
	DefaultProvider string   `koanf:"default_provider" yaml:"default_provider" validate:"required"`
}

// RuntimeConfig contains logging and runtime behavior.
type RuntimeConfig struct {
	LogLevel  string `koanf:"log_level"  yaml:"log_level" validate:"oneof=debug info warn error"`
	LogJSON   bool   `koanf:"log_json"   yaml:"log_json"`
	LogSource bool   `koanf:"log_source" yaml:"log_source"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "127.0.0.1",
			Port:    7420,
			Timeout: 30 * time.Second,
		},
		Extensions: ExtensionsConfig{
			Dir:             "extensions",
			Include:         extension.DefaultIncludes,
			DefaultProvider: "MSSQL",
		},
		Runtime: RuntimeConfig{
			LogLevel: "info",
		},
	}
}

// LoaderConfig maps the extensions section onto the loader's own config.
func (c *Config) LoaderConfig() *extension.Config {
	return &extension.Config{
		Include: c.Extensions.Include,
		Exclude: c.Extensions.Exclude,
		Strict:  c.Extensions.Strict,
	}
}
