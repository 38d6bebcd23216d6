package config

const (
	defaultEndpoint       = "/var/run/downlinkd.sock"
	defaultTimeoutSeconds = 20
	defaultConnectionMode = "shared"
	defaultAutoConnect    = true
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultLogMaxSizeMB   = 10
	defaultLogMaxBackups  = 3
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Daemon: Daemon{
			Endpoint:       defaultEndpoint,
			TimeoutSeconds: defaultTimeoutSeconds,
			ConnectionMode: defaultConnectionMode,
			AutoConnect:    defaultAutoConnect,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			LogDir:     "",
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
		},
	}
}
