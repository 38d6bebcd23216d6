// Package logging constructs the slog loggers used across downlink: console
// or JSON output, level parsing from configuration, and optional rotated file
// output alongside stderr.
package logging
