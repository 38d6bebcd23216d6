package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"downlink/internal/config"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Daemon.ConnectionMode != "shared" {
		t.Fatalf("default connection mode = %q", cfg.Daemon.ConnectionMode)
	}
	if cfg.Daemon.TimeoutSeconds != 20 {
		t.Fatalf("default timeout = %d", cfg.Daemon.TimeoutSeconds)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, exists, err := config.Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if path == "" {
		t.Fatal("expected resolved path")
	}
	if cfg.Daemon.Endpoint == "" {
		t.Fatal("expected default endpoint")
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[daemon]
endpoint = "~/run/downlinkd.sock"
timeout_seconds = 5
connection_mode = "PerCall"

[logging]
level = "DEBUG"
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if strings.HasPrefix(cfg.Daemon.Endpoint, "~") {
		t.Fatalf("endpoint not expanded: %q", cfg.Daemon.Endpoint)
	}
	if cfg.Daemon.ConnectionMode != "percall" {
		t.Fatalf("connection mode = %q, want percall", cfg.Daemon.ConnectionMode)
	}
	if cfg.Daemon.TimeoutSeconds != 5 {
		t.Fatalf("timeout = %d, want 5", cfg.Daemon.TimeoutSeconds)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
}

func TestLoadLeavesTCPEndpointAlone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[daemon]
endpoint = "127.0.0.1:9933"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Daemon.Endpoint != "127.0.0.1:9933" {
		t.Fatalf("endpoint = %q", cfg.Daemon.Endpoint)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"empty endpoint", func(c *config.Config) { c.Daemon.Endpoint = "" }},
		{"negative timeout", func(c *config.Config) { c.Daemon.TimeoutSeconds = -1 }},
		{"unknown mode", func(c *config.Config) { c.Daemon.ConnectionMode = "pooled" }},
		{"unknown log format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"unknown log level", func(c *config.Config) { c.Logging.Level = "trace" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
}
