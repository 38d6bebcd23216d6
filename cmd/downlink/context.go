package main

import (
	"strings"
	"sync"
	"time"

	"downlink/internal/config"
	"downlink/internal/ipc"
	"downlink/internal/logging"
)

type commandContext struct {
	endpointFlag *string
	configFlag   *string
	jsonFlag     *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(endpointFlag, configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		endpointFlag: endpointFlag,
		configFlag:   configFlag,
		jsonFlag:     jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) clientOptions() (ipc.Options, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return ipc.Options{}, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return ipc.Options{}, err
	}

	endpoint := cfg.Daemon.Endpoint
	if c.endpointFlag != nil && strings.TrimSpace(*c.endpointFlag) != "" {
		endpoint = strings.TrimSpace(*c.endpointFlag)
	}
	return ipc.Options{
		Endpoint:    endpoint,
		Timeout:     time.Duration(cfg.Daemon.TimeoutSeconds) * time.Second,
		Mode:        ipc.Mode(cfg.Daemon.ConnectionMode),
		AutoConnect: cfg.Daemon.AutoConnect,
		Logger:      logger,
	}, nil
}

// withClient runs fn with a connected client and closes it afterwards.
func (c *commandContext) withClient(fn func(*ipc.Client) error) error {
	opts, err := c.clientOptions()
	if err != nil {
		return err
	}
	client, err := ipc.New(opts)
	if err != nil {
		return err
	}
	defer client.Close()
	return fn(client)
}
