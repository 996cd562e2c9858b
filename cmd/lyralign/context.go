package main

import (
	"log/slog"

	"lyralign/internal/config"
	"lyralign/internal/logging"
)

// commandContext carries lazily-loaded configuration shared by commands.
type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	cfg       *config.Config
	cfgLoaded bool
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

// ensureConfig loads the configuration once per invocation.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfgLoaded {
		return c.cfg, nil
	}
	path := ""
	if c.configFlag != nil {
		path = *c.configFlag
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	c.cfgLoaded = true
	return cfg, nil
}

// resolvedLogLevel prefers the --log-level flag over the config value.
func (c *commandContext) resolvedLogLevel(cfg *config.Config) string {
	if c.logLevelFlag != nil && *c.logLevelFlag != "" {
		return *c.logLevelFlag
	}
	return cfg.Logging.Level
}

// newLogger builds the logger for a command run.
func (c *commandContext) newLogger(cfg *config.Config) (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:  c.resolvedLogLevel(cfg),
		Format: cfg.Logging.Format,
	})
}
