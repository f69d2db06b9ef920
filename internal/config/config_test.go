package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Precision != DefaultPrecision {
		t.Errorf("Precision = %d, want %d", cfg.Precision, DefaultPrecision)
	}
	if cfg.MaxHistorySize != DefaultMaxHistorySize {
		t.Errorf("MaxHistorySize = %d, want %d", cfg.MaxHistorySize, DefaultMaxHistorySize)
	}
	if !cfg.AutoSave {
		t.Error("AutoSave = false, want true")
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if !cfg.MaxInputValue.Equal(DefaultMaxInputValue) {
		t.Errorf("MaxInputValue = %s, want %s", cfg.MaxInputValue, DefaultMaxInputValue)
	}
	if err := func() error { cfg.ResolvePaths(); return cfg.Validate() }(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestResolvePaths(t *testing.T) {
	cfg := Default()
	cfg.BaseDir = filepath.Join("some", "dir")
	cfg.ResolvePaths()

	if want := filepath.Join("some", "dir", "history", "tally_history.csv"); cfg.HistoryFile != want {
		t.Errorf("HistoryFile = %q, want %q", cfg.HistoryFile, want)
	}
	if want := filepath.Join("some", "dir", "logs", "tally.log"); cfg.LogFile != want {
		t.Errorf("LogFile = %q, want %q", cfg.LogFile, want)
	}
}

func TestResolvePathsKeepsExplicit(t *testing.T) {
	cfg := Default()
	cfg.HistoryFile = "custom.csv"
	cfg.ResolvePaths()

	if cfg.HistoryFile != "custom.csv" {
		t.Errorf("HistoryFile = %q, want custom.csv", cfg.HistoryFile)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"zero precision ok", func(c *Config) { c.Precision = 0 }, false},
		{"negative precision", func(c *Config) { c.Precision = -1 }, true},
		{"zero history size", func(c *Config) { c.MaxHistorySize = 0 }, true},
		{"negative max input", func(c *Config) { c.MaxInputValue = c.MaxInputValue.Neg() }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("error = %v, want ErrInvalidConfig", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
