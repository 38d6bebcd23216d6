package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDaemon(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDaemon() error {
	if c.Daemon.Endpoint == "" {
		return errors.New("daemon.endpoint must be set")
	}
	if c.Daemon.TimeoutSeconds < 0 {
		return fmt.Errorf("daemon.timeout_seconds must not be negative, got %d", c.Daemon.TimeoutSeconds)
	}
	switch c.Daemon.ConnectionMode {
	case "shared", "percall":
	default:
		return fmt.Errorf("daemon.connection_mode must be shared or percall, got %q", c.Daemon.ConnectionMode)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
