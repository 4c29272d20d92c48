package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeTools()
	c.normalizeScan()
	c.normalizeLogging()
	return c.normalizePaths()
}

func (c *Config) normalizeTools() {
	defaults := Default().Tools
	c.Tools.Cuebreakpoints = fallback(c.Tools.Cuebreakpoints, defaults.Cuebreakpoints)
	c.Tools.Shnsplit = fallback(c.Tools.Shnsplit, defaults.Shnsplit)
	c.Tools.Cuetag = fallback(c.Tools.Cuetag, defaults.Cuetag)
	c.Tools.Metaflac = fallback(c.Tools.Metaflac, defaults.Metaflac)
	c.Tools.Wvunpack = fallback(c.Tools.Wvunpack, defaults.Wvunpack)
	c.Tools.Mac = fallback(c.Tools.Mac, defaults.Mac)
}

func (c *Config) normalizeScan() {
	patterns := make([]string, 0, len(c.Scan.Exclude))
	for _, pattern := range c.Scan.Exclude {
		if trimmed := strings.TrimSpace(pattern); trimmed != "" {
			patterns = append(patterns, trimmed)
		}
	}
	c.Scan.Exclude = patterns
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	if c.History.Path, err = expandPath(strings.TrimSpace(c.History.Path)); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	return nil
}

func fallback(value, def string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return def
}
