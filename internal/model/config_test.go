package model

import (
	"path/filepath"
	"testing"
)

func TestConfigSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := &AppConfig{
		API: APIConfig{BaseURL: "https://shop.example.com"},
		Sync: SyncConfig{
			ChatIntervalSec:  7,
			BadgeIntervalSec: 11,
		},
		Display: DisplayConfig{Theme: "default"},
		Log:     LogConfig{File: "/tmp/hiewhub.log", Level: "debug"},
	}

	if err := SaveConfig(path, want); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.API.BaseURL != want.API.BaseURL {
		t.Errorf("BaseURL = %q, want %q", got.API.BaseURL, want.API.BaseURL)
	}
	if got.Sync.ChatIntervalSec != 7 || got.Sync.BadgeIntervalSec != 11 {
		t.Errorf("Sync = %+v", got.Sync)
	}
	if got.Log.File != want.Log.File || got.Log.Level != "debug" {
		t.Errorf("Log = %+v", got.Log)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Sync.ChatIntervalSec != 3 || cfg.Sync.BadgeIntervalSec != 5 {
		t.Errorf("defaults = %+v", cfg.Sync)
	}
	if cfg.API.BaseURL == "" {
		t.Error("default base URL is empty")
	}
}
