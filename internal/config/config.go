// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/minglehq/mingle/internal/domain/similarity"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir points the persistent store at a badger directory.
	// Empty selects the in-memory store.
	DataDir string `koanf:"data_dir"`

	// MutualFriendWeight and InterestWeight blend the two Jaccard
	// similarities into the combined score. They are the scoring policy
	// and deliberately live in configuration, not in the algorithm.
	MutualFriendWeight float64 `koanf:"mutual_friend_weight"`
	InterestWeight     float64 `koanf:"interest_weight"`

	// DefaultLimit is applied when a recommendation request omits limit.
	DefaultLimit int `koanf:"default_limit"`

	// MaxLimit caps GET /recommendations/{id}?limit.
	MaxLimit int `koanf:"max_limit"`
}

// Default limits for recommendation queries.
const (
	defaultRecommendationLimit = 5
	defaultMaxLimit            = 50
)

// New creates a Config populated with defaults.
func New() *Config {
	c := &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		DataDir:            "",
		MutualFriendWeight: similarity.DefaultMutualFriendWeight,
		InterestWeight:     similarity.DefaultInterestWeight,
		DefaultLimit:       defaultRecommendationLimit,
		MaxLimit:           defaultMaxLimit,
	}
	return c
}
