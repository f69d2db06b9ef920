package loader

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/dshills/tally/internal/config"
)

// EnvLoader merges settings from prefixed environment variables.
// With the "tally" prefix, TALLY_PRECISION overrides Precision and so on,
// following the envconfig tags on config.Config.
type EnvLoader struct {
	prefix string
}

// NewEnvLoader creates an environment layer with the given prefix.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix}
}

// Load implements Layer. Unset variables leave cfg untouched.
func (l *EnvLoader) Load(cfg *config.Config) error {
	if err := envconfig.Process(l.prefix, cfg); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	return nil
}
