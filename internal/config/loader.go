package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment names.
const (
	EnvPrefix     = "LFGMENU_"
	EnvConfigFile = "LFGMENU_CONFIG"
)

// LoadOption tunes a single Load call.
type LoadOption func(*loadSettings)

type loadSettings struct {
	file      string
	dotenv    string
	overrides map[string]any
}

// WithFile loads the YAML file at path instead of the one named by
// LFGMENU_CONFIG.
func WithFile(path string) LoadOption {
	return func(s *loadSettings) {
		if path != "" {
			s.file = path
		}
	}
}

// WithDotEnv sets the .env file read before the environment. A missing file
// is not an error.
func WithDotEnv(path string) LoadOption {
	return func(s *loadSettings) {
		s.dotenv = path
	}
}

// WithOverrides sets keys with the highest precedence, e.g. from CLI flags.
func WithOverrides(values map[string]any) LoadOption {
	return func(s *loadSettings) {
		s.overrides = values
	}
}

// Load builds a Config by layering defaults, optional file, env vars and
// overrides. Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) from WithFile or LFGMENU_CONFIG
//  3. env (prefix LFGMENU_), after merging a .env file
//  4. overrides
func Load(ctx context.Context, opts ...LoadOption) (*Config, error) {
	s := loadSettings{dotenv: ".env"}
	for _, opt := range opts {
		opt(&s)
	}

	// godotenv.Load never overrides variables that are already set.
	if s.dotenv != "" {
		if err := godotenv.Load(s.dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, s.dotenv, err)
		}
	}

	base := New(ctx)
	k := koanf.New(".")

	path := s.file
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// LFGMENU_OUTPUT_PATH -> output_path. Underscores are kept to match the
	// flat koanf tags on the struct.
	envProvider := env.Provider(EnvPrefix, ".", func(key string) string {
		key = strings.ToLower(key)
		return strings.TrimPrefix(key, strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	// The config file location is not itself a setting.
	k.Delete("config")

	for key, val := range s.overrides {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("%w: override %s: %w", ErrLoadConfig, key, err)
		}
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(ctx); err != nil {
		return nil, err
	}
	return &cfg, nil
}
