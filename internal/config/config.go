// Package config loads settings for the debug log file host.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	bberrors "github.com/blueblazeassociates/blueblaze-debug-log-file/internal/errors"
	"github.com/blueblazeassociates/blueblaze-debug-log-file/internal/resolver"
)

// Config is the complete host configuration.
type Config struct {
	// LogFile is the requested log path (directory, file, symlink or new path).
	LogFile string `yaml:"log_file" json:"log_file"`

	// DebugLogFile is the fallback constant, used only when LogFile is empty.
	// nil means the constant is not defined.
	DebugLogFile *string `yaml:"debug_log_file,omitempty" json:"debug_log_file,omitempty"`

	// Debug enables debug diagnostics from the resolver.
	Debug bool `yaml:"debug" json:"debug"`

	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// LoggingConfig configures the host logger written through the resolved destination.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// NewConfig creates a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Fallback returns the fallback constant and whether it is defined.
func (c *Config) Fallback() (string, bool) {
	if c.DebugLogFile == nil {
		return "", false
	}
	return *c.DebugLogFile, true
}

// GetUserConfigPath returns the path to the user configuration file:
//   - $XDG_CONFIG_HOME/blueblaze/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/blueblaze/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "blueblaze", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "blueblaze", "config.yaml")
	}
	return filepath.Join(home, ".config", "blueblaze", "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// LoadUserConfig loads the user configuration file.
// Returns nil config and nil error if the file doesn't exist.
func LoadUserConfig() (*Config, error) {
	configPath := GetUserConfigPath()
	if !fileExists(configPath) {
		return nil, nil
	}

	cfg := &Config{}
	if err := cfg.loadYAML(configPath); err != nil {
		return nil, fmt.Errorf("failed to load user config from %s: %w", configPath, err)
	}
	return cfg, nil
}

// Load builds the configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User config (~/.config/blueblaze/config.yaml)
//  3. The explicit config file, if path is non-empty
//  4. Environment variables (BLUEBLAZE_*, BBA_WP__DEBUG_LOG_FILE)
//
// The result is not validated, so callers can layer flag overrides on top
// before calling Validate.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	if userCfg, err := LoadUserConfig(); err != nil {
		return nil, err
	} else if userCfg != nil {
		cfg.mergeWith(userCfg)
	}

	if path != "" {
		explicit := &Config{}
		if err := explicit.loadYAML(path); err != nil {
			return nil, err
		}
		cfg.mergeWith(explicit)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// loadYAML parses a YAML file into c.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return bberrors.ConfigInvalid(fmt.Sprintf("failed to parse config file %s", path), err)
	}
	return nil
}

// mergeWith merges values set in other into c.
func (c *Config) mergeWith(other *Config) {
	if other.LogFile != "" {
		c.LogFile = other.LogFile
	}
	if other.DebugLogFile != nil {
		v := *other.DebugLogFile
		c.DebugLogFile = &v
	}
	// false cannot be told apart from unset, so a later file can only turn debug on.
	if other.Debug {
		c.Debug = true
	}
	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
	if other.Logging.Format != "" {
		c.Logging.Format = other.Logging.Format
	}
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("BLUEBLAZE_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v, ok := os.LookupEnv(resolver.FallbackName); ok {
		c.DebugLogFile = &v
	}
	if v := os.Getenv("BLUEBLAZE_DEBUG"); v != "" {
		c.Debug = strings.EqualFold(v, "true") || v == "1"
	}
	if v := os.Getenv("BLUEBLAZE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("BLUEBLAZE_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return bberrors.ConfigInvalid(
			fmt.Sprintf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level), nil)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		return bberrors.ConfigInvalid(
			fmt.Sprintf("logging.format must be 'text' or 'json', got %s", c.Logging.Format), nil)
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
