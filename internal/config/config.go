// Package config loads tool configuration from the user config file,
// .snowattach/.env files, and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Instance string         `yaml:"instance"`
	Auth     AuthConfig     `yaml:"auth"`
	Download DownloadConfig `yaml:"download"`
	UI       UIConfig       `yaml:"ui"`
}

// AuthConfig holds connection credentials.
// Secrets belong in the environment or .snowattach/.env; the file fields
// exist for lab instances where that is acceptable.
type AuthConfig struct {
	Mode         string `yaml:"mode"` // "basic" or "oauth"
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// DownloadConfig holds download defaults
type DownloadConfig struct {
	Dest        string `yaml:"dest"`
	Overwrite   bool   `yaml:"overwrite"`
	AppendSysID bool   `yaml:"append_sys_id"`
}

// UIConfig holds UI settings
type UIConfig struct {
	Color    bool   `yaml:"color"`
	Format   string `yaml:"format"`
	Progress string `yaml:"progress"`
}

// NewDefault creates a Config with default values
func NewDefault() *Config {
	return &Config{
		Auth: AuthConfig{
			Mode: "basic",
		},
		Download: DownloadConfig{
			Dest: ".",
		},
		UI: UIConfig{
			Color:    true,
			Format:   "text",
			Progress: "bar",
		},
	}
}

// Validate performs validation beyond what unmarshalling checks
func (c *Config) Validate() error {
	switch c.Auth.Mode {
	case "", "basic", "oauth":
		// OK
	default:
		return fmt.Errorf("invalid auth mode: %s (must be basic or oauth)", c.Auth.Mode)
	}

	switch c.UI.Format {
	case "", "text", "json":
		// OK
	default:
		return fmt.Errorf("invalid UI format: %s (must be text or json)", c.UI.Format)
	}

	switch c.UI.Progress {
	case "", "bar", "none":
		// OK
	default:
		return fmt.Errorf("invalid progress style: %s (must be bar or none)", c.UI.Progress)
	}

	return nil
}

// DefaultPath returns the path to the user config file
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, SnowattachDir, "config.yaml")
}

// Load reads configuration from the given path, falling back to defaults
// if the file does not exist. An empty path means DefaultPath().
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := NewDefault()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config to the given path, creating the directory if needed.
// An empty path means DefaultPath().
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}
