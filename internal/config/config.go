package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configDirName  = "syncmenu"
	configFileName = "config.yaml"

	// DefaultLabel names the submenu that groups multiple daemon actions.
	DefaultLabel = "Dropbox"
	// DefaultTimeout bounds a single daemon round-trip.
	DefaultTimeout = 30 * time.Second
)

// Config represents the persisted configuration file.
type Config struct {
	Socket  string        `yaml:"socket,omitempty"`
	Label   string        `yaml:"label,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
	Debug   bool          `yaml:"debug,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Label:   DefaultLabel,
		Timeout: DefaultTimeout,
	}
}

// Path returns the resolved configuration file path.
func Path() (string, error) {
	if custom := strings.TrimSpace(os.Getenv("SYNCMENU_CONFIG_PATH")); custom != "" {
		return custom, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("determine user config dir: %w", err)
	}

	return filepath.Join(base, configDirName, configFileName), nil
}

// Load reads the configuration at path, or at Path() when path is empty. A
// missing file yields the defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	if path == "" {
		resolved, err := Path()
		if err != nil {
			return nil, err
		}
		path = resolved
	}

	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	applyEnv(cfg, os.Getenv)
	cfg.normalize()
	return cfg, nil
}

// Save persists the configuration to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if cfg == nil {
		return errors.New("nil configuration")
	}
	if path == "" {
		resolved, err := Path()
		if err != nil {
			return err
		}
		path = resolved
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("ensure config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return os.Rename(tempFile, path)
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if socket := strings.TrimSpace(getenv("SYNCMENU_DAEMON_SOCKET")); socket != "" {
		cfg.Socket = socket
	}
	if raw := strings.TrimSpace(getenv("SYNCMENU_DEBUG")); raw != "" {
		if enabled, err := strconv.ParseBool(raw); err == nil {
			cfg.Debug = enabled
		}
	}
}

func (c *Config) normalize() {
	c.Socket = strings.TrimSpace(c.Socket)
	c.Label = strings.TrimSpace(c.Label)
	if c.Label == "" {
		c.Label = DefaultLabel
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}
