package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HWC_CONFIG_DIR", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Network.Network != "mainnet" {
		t.Errorf("network = %q, want mainnet", cfg.Network.Network)
	}
	if cfg.Network.NodeURL == "" {
		t.Error("expected a node url preset")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level = %q, want info", cfg.LogLevel)
	}
	if want := filepath.Join(dir, "data"); cfg.DataDir != want {
		t.Errorf("data dir = %q, want %q", cfg.DataDir, want)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HWC_CONFIG_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.LogLevel = "debug"
	cfg.Toggles = map[string]bool{"wallet-service.rollout": true}
	if err := cfg.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.LogLevel != "debug" {
		t.Errorf("log level = %q, want debug", got.LogLevel)
	}
	if !got.Toggles["wallet-service.rollout"] {
		t.Error("toggle override lost on reload")
	}
}

func TestLoadPartialFileKeepsPresets(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HWC_CONFIG_DIR", dir)

	raw := []byte(`{"log_level": "warn"}`)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), raw, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("log level = %q, want warn", cfg.LogLevel)
	}
	if cfg.Network.NodeURL == "" {
		t.Error("partial file should keep the network preset")
	}
}

func TestLoadEnvOverridesWinOverFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HWC_CONFIG_DIR", dir)

	raw := []byte(`{"network": {"network": "testnet", "nodeUrl": "https://node.from.file/"}}`)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), raw, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("HWC_NODE_URL", "https://node.from.env/")
	t.Setenv("HWC_LOG_LEVEL", "error")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Network.NodeURL != "https://node.from.env/" {
		t.Errorf("node url = %q, want env override", cfg.Network.NodeURL)
	}
	if cfg.Network.Network != "testnet" {
		t.Errorf("network = %q, want testnet from file", cfg.Network.Network)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("log level = %q, want error", cfg.LogLevel)
	}
}

func TestSetTogglePersists(t *testing.T) {
	t.Setenv("HWC_CONFIG_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.SetToggle("nano-contracts.rollout", true); err != nil {
		t.Fatalf("set toggle: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !got.Toggles["nano-contracts.rollout"] {
		t.Error("toggle override not persisted")
	}
}

func TestLoadToggleOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HWC_CONFIG_DIR", dir)

	raw := []byte(`{"toggles": {"nano-contracts.rollout": true, "wallet-service.rollout": false}}`)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), raw, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("HWC_TOGGLES", "wallet-service.rollout:true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Toggles["wallet-service.rollout"] {
		t.Error("env toggle did not override the file value")
	}
	if !cfg.Toggles["nano-contracts.rollout"] {
		t.Error("file toggle lost during env overlay")
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level}
		if got := cfg.SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
