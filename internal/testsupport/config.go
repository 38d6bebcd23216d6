// Package testsupport provides shared helpers for downlink tests: temp-dir
// backed configuration and a scripted in-process receiver daemon speaking the
// stanza protocol.
package testsupport

import (
	"path/filepath"
	"testing"

	"downlink/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with a unique temp socket per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Daemon.Endpoint = filepath.Join(base, "downlinkd.sock")
	cfg.Daemon.TimeoutSeconds = 2
	cfg.Logging.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithConnectionMode overrides the connection mode on the test config.
func WithConnectionMode(mode string) ConfigOption {
	return func(c *config.Config) {
		c.Daemon.ConnectionMode = mode
	}
}
