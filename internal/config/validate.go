package config

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q (want debug, info, warn, or error)", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateScan() error {
	for _, pattern := range c.Scan.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("scan.exclude: invalid pattern %q", pattern)
		}
	}
	return nil
}
