package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if MINGLE_CONFIG is set
//  3. env (prefix MINGLE_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("MINGLE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: MINGLE_ADDR, MINGLE_DATA_DIR, ...
	// Map env keys like MINGLE_DEFAULT_LIMIT -> default_limit (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("MINGLE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "mingle_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the service cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MutualFriendWeight < 0 || c.InterestWeight < 0:
		return fmt.Errorf("%w: similarity weights must not be negative", ErrInvalidConfig)
	case c.MutualFriendWeight+c.InterestWeight <= 0:
		return fmt.Errorf("%w: similarity weights must sum to a positive value", ErrInvalidConfig)
	case c.DefaultLimit < 0:
		return fmt.Errorf("%w: default_limit must not be negative", ErrInvalidConfig)
	case c.MaxLimit < 1:
		return fmt.Errorf("%w: max_limit must be at least 1", ErrInvalidConfig)
	case c.DefaultLimit > c.MaxLimit:
		return fmt.Errorf("%w: default_limit must not exceed max_limit", ErrInvalidConfig)
	}
	return nil
}
