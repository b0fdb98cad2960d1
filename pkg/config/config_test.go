package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("default port %d", cfg.Server.Port)
	}
	if cfg.Pipeline.Lookback != 60 || cfg.Pipeline.Epochs != 10 || cfg.Pipeline.BatchSize != 32 {
		t.Fatalf("pipeline defaults wrong: %+v", cfg.Pipeline)
	}
	if cfg.MarketData.Provider != "yahoo" {
		t.Fatalf("default provider %s", cfg.MarketData.Provider)
	}
	if cfg.MarketData.CacheTTL != 15*time.Minute {
		t.Fatalf("default cache ttl %v", cfg.MarketData.CacheTTL)
	}
}

func TestLoadRejectsMissingEnvironment(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	path := writeConfig(t, "environment: test\nmarketdata:\n  provider: alpha\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for provider")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	t.Setenv("MODELS_DIR", "/tmp/stockcast-models")
	t.Setenv("PORT", "9999")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Models.Dir != "/tmp/stockcast-models" {
		t.Fatalf("models dir %s", cfg.Models.Dir)
	}
	if cfg.Server.Port != 9999 {
		t.Fatalf("port %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level %s", cfg.Log.Level)
	}
}

func TestLoadEnabledSinksRequireTargets(t *testing.T) {
	path := writeConfig(t, "environment: test\nevents:\n  enabled: true\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for events without brokers")
	}

	path = writeConfig(t, "environment: test\nhistory:\n  enabled: true\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for history without host")
	}
}
