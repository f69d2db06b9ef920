// Package config defines the calculator configuration.
//
// Configuration is resolved once at startup (defaults, then an optional
// TOML file, then TALLY_* environment variables) and is immutable for
// the lifetime of the calculator it is handed to.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/shopspring/decimal"
)

// Default values.
const (
	DefaultPrecision      = 10
	DefaultMaxHistorySize = 1000
	DefaultLogLevel       = "info"
	DefaultBaseDir        = "."
)

// DefaultMaxInputValue bounds operand magnitude when no bound is configured.
var DefaultMaxInputValue = decimal.RequireFromString("1e999")

// Config holds all calculator settings.
type Config struct {
	// Precision is the number of decimal places results are rounded to.
	Precision int `toml:"precision" envconfig:"PRECISION"`

	// MaxInputValue is the maximum operand magnitude accepted.
	MaxInputValue decimal.Decimal `toml:"max_input_value" envconfig:"MAX_INPUT_VALUE"`

	// MaxHistorySize bounds the history store and the undo/redo depth.
	MaxHistorySize int `toml:"max_history_size" envconfig:"MAX_HISTORY_SIZE"`

	// AutoSave writes the history file after every calculation and on exit.
	AutoSave bool `toml:"auto_save" envconfig:"AUTO_SAVE"`

	// BaseDir anchors the derived history and log paths.
	BaseDir string `toml:"base_dir" envconfig:"BASE_DIR"`

	// HistoryFile is the CSV history path. Derived from BaseDir when empty.
	HistoryFile string `toml:"history_file" envconfig:"HISTORY_FILE"`

	// LogFile is the log path. Derived from BaseDir when empty.
	LogFile string `toml:"log_file" envconfig:"LOG_FILE"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" envconfig:"LOG_LEVEL"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Precision:      DefaultPrecision,
		MaxInputValue:  DefaultMaxInputValue,
		MaxHistorySize: DefaultMaxHistorySize,
		AutoSave:       true,
		BaseDir:        DefaultBaseDir,
		LogLevel:       DefaultLogLevel,
	}
}

// ResolvePaths fills in the history and log paths from BaseDir when they
// were not set explicitly.
func (c *Config) ResolvePaths() {
	if c.BaseDir == "" {
		c.BaseDir = DefaultBaseDir
	}
	if c.HistoryFile == "" {
		c.HistoryFile = filepath.Join(c.BaseDir, "history", "tally_history.csv")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(c.BaseDir, "logs", "tally.log")
	}
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	if c.Precision < 0 {
		return fmt.Errorf("%w: precision must be non-negative, got %d", ErrInvalidConfig, c.Precision)
	}
	if c.MaxHistorySize <= 0 {
		return fmt.Errorf("%w: max_history_size must be positive, got %d", ErrInvalidConfig, c.MaxHistorySize)
	}
	if c.MaxInputValue.Sign() <= 0 {
		return fmt.Errorf("%w: max_input_value must be positive, got %s", ErrInvalidConfig, c.MaxInputValue)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level must be debug, info, warn, or error, got %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}
