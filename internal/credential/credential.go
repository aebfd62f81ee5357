// Package credential provides shared credential resolution utilities.
package credential

import (
	"errors"
	"os"
)

// EnvPrefix is the tool-specific environment variable prefix checked first.
const EnvPrefix = "SNOWATTACH_"

// ErrNotFound is returned when no value can be resolved.
var ErrNotFound = errors.New("no value found")

// ResolverConfig defines the sources for a single credential value.
type ResolverConfig struct {
	// Name is used to construct the SNOWATTACH_{NAME} env var.
	// Should be in uppercase (e.g., "INSTANCE", "USERNAME", "PASSWORD").
	Name string

	// DefaultEnvVars are fallback environment variables to check.
	// Common patterns: ["SERVICENOW_USERNAME"], ["SERVICENOW_PASSWORD", "SNOW_PASSWORD"].
	DefaultEnvVars []string

	// ConfigValue is the value from the configuration file (config.yaml).
	ConfigValue string
}

// Resolve resolves a credential value from multiple sources.
// Priority order:
//  1. SNOWATTACH_{NAME} env var
//  2. DefaultEnvVars (e.g., SERVICENOW_PASSWORD)
//  3. ConfigValue (from config.yaml)
//
// Returns ErrNotFound if no value is found.
func Resolve(cfg ResolverConfig) (string, error) {
	// 1. Check SNOWATTACH_{NAME}
	if cfg.Name != "" {
		if v := os.Getenv(EnvPrefix + cfg.Name); v != "" {
			return v, nil
		}
	}

	// 2. Check default env vars
	for _, envVar := range cfg.DefaultEnvVars {
		if v := os.Getenv(envVar); v != "" {
			return v, nil
		}
	}

	// 3. Check config value
	if cfg.ConfigValue != "" {
		return cfg.ConfigValue, nil
	}

	return "", ErrNotFound
}

// ResolveOptional is like Resolve but returns an empty string instead of
// ErrNotFound. Useful for values that have a sensible absent state.
func ResolveOptional(cfg ResolverConfig) string {
	v, err := Resolve(cfg)
	if err != nil {
		return ""
	}
	return v
}

// Config builds a ResolverConfig with just the config value.
func Config(name, configValue string) ResolverConfig {
	return ResolverConfig{
		Name:        name,
		ConfigValue: configValue,
	}
}

// WithEnvVars adds environment variables to check.
func (c ResolverConfig) WithEnvVars(envVars ...string) ResolverConfig {
	c.DefaultEnvVars = append(c.DefaultEnvVars, envVars...)

	return c
}
