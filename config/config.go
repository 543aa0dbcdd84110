// Package config handles wallet configuration.
//
// Values come from three layers applied in order: built-in defaults,
// the JSON config file, and HWC_-prefixed environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/r4mmer/hathor-wallet-core/network"
)

const (
	appName        = "hathor-wallet-core"
	configFileName = "config.json"
)

// Config represents the wallet configuration.
type Config struct {
	// Network holds the in-memory network presets used while no custom
	// settings document has been persisted.
	Network network.Settings `json:"network"`

	// Toggles overrides feature defaults at toggle initialization.
	Toggles map[string]bool `json:"toggles,omitempty"`

	// DataDir is where local storage lives.
	DataDir string `json:"data_dir,omitempty"`

	LogLevel string `json:"log_level,omitempty"`

	path string
}

// envOverrides are applied on top of the file. Toggles take the form
// "name:true,other:false".
type envOverrides struct {
	ConfigDir        string          `env:"HWC_CONFIG_DIR"`
	DataDir          string          `env:"HWC_DATA_DIR"`
	LogLevel         string          `env:"HWC_LOG_LEVEL"`
	Network          string          `env:"HWC_NETWORK"`
	NodeURL          string          `env:"HWC_NODE_URL"`
	WalletServiceURL string          `env:"HWC_WALLET_SERVICE_URL"`
	Toggles          map[string]bool `env:"HWC_TOGGLES"`
}

// Load loads configuration from the config file.
// Returns default config if file doesn't exist.
func Load() (*Config, error) {
	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	path, err := configPath(ov.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("get config path: %w", err)
	}

	cfg := defaultConfig()
	cfg.path = path
	cfg.DataDir = filepath.Join(filepath.Dir(path), "data")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyOverrides(ov)
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Unmarshal on top of the defaults: keys absent from the file keep
	// their preset values.
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.applyOverrides(ov)
	return cfg, nil
}

// Save persists the configuration to disk.
func (c *Config) Save() error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// SetToggle records a feature toggle override and persists it.
func (c *Config) SetToggle(name string, on bool) error {
	if c.Toggles == nil {
		c.Toggles = make(map[string]bool)
	}
	c.Toggles[name] = on
	return c.Save()
}

// SlogLevel maps the configured log level onto slog's scale.
// Unknown values read as info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) applyOverrides(ov envOverrides) {
	if ov.DataDir != "" {
		c.DataDir = ov.DataDir
	}
	if ov.LogLevel != "" {
		c.LogLevel = ov.LogLevel
	}
	if ov.Network != "" {
		c.Network.Network = ov.Network
	}
	if ov.NodeURL != "" {
		c.Network.NodeURL = ov.NodeURL
	}
	if ov.WalletServiceURL != "" {
		c.Network.WalletServiceURL = ov.WalletServiceURL
	}
	if len(ov.Toggles) > 0 {
		if c.Toggles == nil {
			c.Toggles = make(map[string]bool, len(ov.Toggles))
		}
		for name, on := range ov.Toggles {
			c.Toggles[name] = on
		}
	}
}

func configPath(override string) (string, error) {
	if override != "" {
		return filepath.Join(override, configFileName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, appName, configFileName), nil
}

func defaultConfig() *Config {
	return &Config{
		Network:  network.Mainnet(),
		LogLevel: "info",
	}
}
