package config

import (
	"errors"
	"fmt"

	"recode"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEncoding(); err != nil {
		return err
	}
	return c.validateDetection()
}

func (c *Config) validateEncoding() error {
	if _, ok := recode.LookupCodec(c.Encoding.Default); !ok {
		return fmt.Errorf("encoding.default: unsupported encoding %q", c.Encoding.Default)
	}
	return nil
}

func (c *Config) validateDetection() error {
	switch c.Detection.Strategy {
	case StrategyChardet, StrategySequential:
	default:
		return fmt.Errorf("detection.strategy must be %q or %q, got %q", StrategyChardet, StrategySequential, c.Detection.Strategy)
	}
	if c.Detection.MinConfidence < 0 || c.Detection.MinConfidence > 1 {
		return errors.New("detection.min_confidence must be between 0 and 1")
	}
	return nil
}
