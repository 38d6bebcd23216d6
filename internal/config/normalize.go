package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeDaemon(); err != nil {
		return err
	}
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeDaemon() error {
	endpoint := strings.TrimSpace(c.Daemon.Endpoint)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	// Socket paths get the usual expansion; host:port endpoints pass through.
	if strings.Contains(endpoint, "/") || strings.HasPrefix(endpoint, "~") {
		expanded, err := expandPath(endpoint)
		if err != nil {
			return fmt.Errorf("daemon.endpoint: %w", err)
		}
		endpoint = expanded
	}
	c.Daemon.Endpoint = endpoint

	if c.Daemon.TimeoutSeconds == 0 {
		c.Daemon.TimeoutSeconds = defaultTimeoutSeconds
	}

	mode := strings.ToLower(strings.TrimSpace(c.Daemon.ConnectionMode))
	if mode == "" {
		mode = defaultConnectionMode
	}
	c.Daemon.ConnectionMode = mode
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.LogDir) != "" {
		expanded, err := expandPath(c.Logging.LogDir)
		if err != nil {
			return fmt.Errorf("logging.log_dir: %w", err)
		}
		c.Logging.LogDir = expanded
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if c.Logging.MaxBackups <= 0 {
		c.Logging.MaxBackups = defaultLogMaxBackups
	}
	return nil
}
