package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"dario.cat/mergo"
	"github.com/goccy/go-yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tabhost/tabhost/engine/schema"
)

const envPrefix = "TABHOST_"

// Load builds the configuration from defaults, an optional YAML file, and
// TABHOST_* environment variables, in ascending precedence, then validates
// the result. An empty file path skips the file layer.
func Load(ctx context.Context, file string) (*Config, error) {
	cfg := Default()
	if file != "" {
		if err := applyFile(cfg, file); err != nil {
			return nil, err
		}
	}
	if err := applyEnvironment(cfg); err != nil {
		return nil, err
	}
	if err := schema.NewStructValidator(cfg).Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyFile merges a YAML config file over the defaults.
func applyFile(cfg *Config, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", file, err)
	}
	fileCfg := &Config{}
	if err := yaml.Unmarshal(data, fileCfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", file, err)
	}
	if err := mergo.Merge(cfg, fileCfg, mergo.WithOverride); err != nil {
		return fmt.Errorf("failed to merge config file %s: %w", file, err)
	}
	return nil
}

// applyEnvironment overlays TABHOST_* variables on top of the current values.
func applyEnvironment(cfg *Config) error {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return fmt.Errorf("failed to load config defaults: %w", err)
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return transformEnvKey(strings.TrimPrefix(key, envPrefix)), value
		},
	}), nil); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return nil
}

// transformEnvKey converts an environment variable name to a koanf path:
// SERVER_PORT -> server.port, EXTENSIONS_DEFAULT_PROVIDER ->
// extensions.default_provider.
func transformEnvKey(s string) string {
	s = strings.ToLower(s)
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '_' })
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + "." + strings.Join(parts[1:], "_")
}
