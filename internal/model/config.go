package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// APIConfig holds connection settings for the HiewHub backend.
type APIConfig struct {
	// BaseURL is the root of the deployment, e.g. https://shop.example.com.
	// Auth endpoints live directly under it; everything else under /api.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// SyncConfig holds the polling cadences for the live surfaces.
type SyncConfig struct {
	// ChatIntervalSec is the poll period for chat rooms and messages.
	ChatIntervalSec int `mapstructure:"chat_interval_sec" yaml:"chat_interval_sec"`

	// BadgeIntervalSec is the poll period for the header badge counters.
	BadgeIntervalSec int `mapstructure:"badge_interval_sec" yaml:"badge_interval_sec"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// LogConfig holds file logging settings. The TUI owns the terminal, so
// logs always go to a file.
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Sync    SyncConfig    `mapstructure:"sync" yaml:"sync"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/hiewhub/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "hiewhub", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			BaseURL: "https://csi101.rapheephat.site",
		},
		Sync: SyncConfig{
			ChatIntervalSec:  3,
			BadgeIntervalSec: 5,
		},
		Display: DisplayConfig{Theme: "default"},
		Log:     LogConfig{Level: "info"},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("api.base_url", "https://csi101.rapheephat.site")
	v.SetDefault("sync.chat_interval_sec", 3)
	v.SetDefault("sync.badge_interval_sec", 5)
	v.SetDefault("display.theme", "default")
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Sync.ChatIntervalSec <= 0 {
		cfg.Sync.ChatIntervalSec = 3
	}
	if cfg.Sync.BadgeIntervalSec <= 0 {
		cfg.Sync.BadgeIntervalSec = 5
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api", cfg.API)
	v.Set("sync", cfg.Sync)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
