package config

import "strings"

func (c *Config) normalize() {
	c.normalizeEncoding()
	c.normalizeDetection()
	c.normalizeLogging()
}

func (c *Config) normalizeEncoding() {
	c.Encoding.Default = strings.ToLower(strings.TrimSpace(c.Encoding.Default))
	if c.Encoding.Default == "" {
		c.Encoding.Default = defaultTargetEncoding
	}
}

func (c *Config) normalizeDetection() {
	c.Detection.Strategy = strings.ToLower(strings.TrimSpace(c.Detection.Strategy))
	if c.Detection.Strategy == "" {
		c.Detection.Strategy = defaultDetectionStrategy
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
