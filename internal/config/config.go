package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mj1618/wintitle/internal/logging"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration written as a Go duration string ("750ms").
type Duration time.Duration

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string like \"2s\": %w", err)
	}
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// FallbackConfig controls the accessibility-tree title fallback.
type FallbackConfig struct {
	// Enabled turns the fallback on/off (default: true)
	Enabled bool `yaml:"enabled"`
	// Timeout bounds how long a caller waits for one fallback (default: 2s)
	Timeout Duration `yaml:"timeout"`
	// Workers is the maximum number of concurrent fallback lookups (default: 4)
	Workers int `yaml:"workers"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	// Level controls verbosity: debug, info, warn, error
	Level string `yaml:"level"`
	// Format is text or json
	Format string `yaml:"format"`
}

// Config is the on-disk configuration.
type Config struct {
	Fallback FallbackConfig `yaml:"fallback"`
	Log      LogConfig      `yaml:"log"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Fallback: FallbackConfig{
			Enabled: true,
			Timeout: Duration(2 * time.Second),
			Workers: 4,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "wintitle", "config.yaml"), nil
}

// Load reads the config at the default location.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads path over the defaults. A missing file yields the
// defaults unchanged.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Fallback.Timeout < 0 {
		return fmt.Errorf("fallback.timeout must not be negative, got %s", time.Duration(c.Fallback.Timeout))
	}
	if c.Fallback.Workers < 1 {
		return fmt.Errorf("fallback.workers must be at least 1, got %d", c.Fallback.Workers)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json", "":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}
