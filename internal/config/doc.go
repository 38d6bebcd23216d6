// Package config loads, normalizes, and validates downlink configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the client and CLI need: the daemon endpoint, exchange timeout, connection
// mode, and log output settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical modes, and clear validation errors.
package config
