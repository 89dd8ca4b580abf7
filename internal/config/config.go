package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// HDRConfig configures HDR handling.
type HDRConfig struct {
	// ToggleOnPlayback switches HDR on for the daemon's playback session
	// and back off on shutdown, on displays that support it.
	ToggleOnPlayback bool `yaml:"toggle_on_playback"`
}

// LoggingConfig configures daemon logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Config is the mediawin configuration.
type Config struct {
	// Output names the display output to enumerate; empty selects the
	// primary output.
	Output string `yaml:"output"`

	// PreferredRefreshRate picks the representative record when several
	// detected modes share a resolution. 0 keeps the first record seen.
	PreferredRefreshRate float64 `yaml:"preferred_refresh_rate"`

	// FrameIntervalMS is the render loop cadence in milliseconds.
	FrameIntervalMS int `yaml:"frame_interval_ms"`

	HDR     HDRConfig     `yaml:"hdr"`
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "mediawin", "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		FrameIntervalMS: 16,
		Logging:         LoggingConfig{Level: "info"},
	}
}

// Load reads the configuration from the standard location. A missing file
// yields the defaults.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the configuration from path. A missing file yields the
// defaults; a present file is merged over them and validated.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if c.PreferredRefreshRate < 0 {
		return fmt.Errorf("preferred_refresh_rate must not be negative, got %v", c.PreferredRefreshRate)
	}
	if c.FrameIntervalMS < 1 || c.FrameIntervalMS > 1000 {
		return fmt.Errorf("frame_interval_ms must be between 1 and 1000, got %d", c.FrameIntervalMS)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging level %q", c.Logging.Level)
	}
	return nil
}

// Print writes the effective configuration as YAML.
func (c *Config) Print() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(out), nil
}
