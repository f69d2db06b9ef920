package loader

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/tally/internal/config"
)

// TOMLLoader merges settings from a TOML file.
type TOMLLoader struct {
	path string
}

// NewTOMLLoader creates a TOML layer for the given path.
// An empty path makes the layer a no-op.
func NewTOMLLoader(path string) *TOMLLoader {
	return &TOMLLoader{path: path}
}

// Load implements Layer. A missing file is not an error.
func (l *TOMLLoader) Load(cfg *config.Config) error {
	if l.path == "" {
		return nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", l.path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return &ParseError{
			Path:    l.path,
			Message: err.Error(),
			Err:     err,
		}
	}
	return nil
}

// ParseError describes a malformed configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
