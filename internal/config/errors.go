package config

import "errors"

// ErrInvalidConfig is the base error for configuration validation
// failures. Use errors.Is to match it.
var ErrInvalidConfig = errors.New("invalid configuration")
