// Package loader resolves the calculator configuration.
//
// Resolution order: built-in defaults, then an optional TOML file, then
// TALLY_* environment variables. Later sources override earlier ones.
package loader

import (
	"github.com/dshills/tally/internal/config"
)

// EnvPrefix is the environment variable prefix (TALLY_PRECISION, ...).
const EnvPrefix = "tally"

// Layer applies one configuration source on top of an existing config.
type Layer interface {
	// Load merges the source's settings into cfg.
	// A missing source is not an error.
	Load(cfg *config.Config) error
}

// Load resolves the full configuration. path names an optional TOML
// file; an empty path skips the file layer.
func Load(path string) (*config.Config, error) {
	cfg := config.Default()

	layers := []Layer{
		NewTOMLLoader(path),
		NewEnvLoader(EnvPrefix),
	}
	for _, l := range layers {
		if err := l.Load(&cfg); err != nil {
			return nil, err
		}
	}

	cfg.ResolvePaths()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
