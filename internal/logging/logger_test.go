package logging_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"downlink/internal/config"
	"downlink/internal/logging"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewWithLogDirWritesFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", LogDir: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hello", "component", "test")

	data, err := os.ReadFile(filepath.Join(dir, "downlink.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected log output in file")
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "json"
	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger")
	}
	if _, err := logging.NewFromConfig(nil); err != nil {
		t.Fatalf("NewFromConfig(nil): %v", err)
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("dropped")
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should not be enabled")
	}
}
