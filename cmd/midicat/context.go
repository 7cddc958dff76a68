package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"midicat/internal/config"
	"midicat/internal/failures"
	"midicat/internal/logging"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
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
			c.configErr = failures.Wrap(failures.ErrConfiguration, "config", "load", "", err)
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
			if err := cfg.Validate(); err != nil {
				c.configErr = failures.Wrap(failures.ErrConfiguration, "config", "log level", "", err)
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = failures.Wrap(failures.ErrConfiguration, "config", "ensure directories", "", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

// newLogger builds the run logger writing console output to console.
func (c *commandContext) newLogger(console io.Writer) (*slog.Logger, io.Closer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, closer, err := logging.NewFromConfig(cfg, console)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, closer, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
