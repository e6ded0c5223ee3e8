package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"recode/internal/config"
)

// commandContext carries lazily-loaded configuration shared across the
// command tree. Loading happens at most once per invocation.
type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) flagPath() string {
	return flagValue(c.configFlag)
}

// resolvedLogLevel prefers the --log-level flag over the configured value.
func (c *commandContext) resolvedLogLevel(cfg *config.Config) string {
	if v := flagValue(c.logLevelFlag); v != "" {
		return v
	}
	return cfg.Logging.Level
}

// resolvedLogFormat prefers the --log-format flag over the configured value.
func (c *commandContext) resolvedLogFormat(cfg *config.Config) string {
	if v := flagValue(c.logFormatFlag); v != "" {
		return v
	}
	return cfg.Logging.Format
}

func (c *commandContext) logFlagsSet() bool {
	return flagValue(c.logLevelFlag) != "" || flagValue(c.logFormatFlag) != ""
}

func flagValue(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(c.flagPath())
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configExists = exists
	})
	return c.config, c.configErr
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
