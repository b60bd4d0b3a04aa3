package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
terminal:
  key: TestTerminal
  password: secret
  debug: true
api:
  timeout: 5s
server:
  port: 9090
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Terminal.Key != "TestTerminal" || cfg.Terminal.Password != "secret" || !cfg.Terminal.Debug {
		t.Errorf("unexpected terminal config: %+v", cfg.Terminal)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", cfg.API.Timeout)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("Expected default base url, got %s", cfg.API.BaseURL)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Worker.SyncInterval != 5*time.Minute {
		t.Errorf("Expected default sync interval, got %v", cfg.Worker.SyncInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TERMINAL_KEY", "EnvTerminal")
	t.Setenv("TERMINAL_PASSWORD", "env-secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Terminal.Key != "EnvTerminal" {
		t.Errorf("Expected EnvTerminal, got %s", cfg.Terminal.Key)
	}
	if cfg.Terminal.Password != "env-secret" {
		t.Errorf("Expected env-secret, got %s", cfg.Terminal.Password)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingTerminalKey) {
		t.Errorf("Expected ErrMissingTerminalKey, got %v", err)
	}

	cfg.Terminal.Key = "TestTerminal"
	if err := cfg.Validate(); !errors.Is(err, ErrMissingTerminalPassword) {
		t.Errorf("Expected ErrMissingTerminalPassword, got %v", err)
	}
}
