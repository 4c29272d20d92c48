package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override file configuration.
const (
	EnvLogLevel       = "CUESPLIT_LOG_LEVEL"
	EnvLogFormat      = "CUESPLIT_LOG_FORMAT"
	EnvHistoryPath    = "CUESPLIT_HISTORY_PATH"
	EnvHistoryEnabled = "CUESPLIT_HISTORY_ENABLED"
)

// applyEnv loads .env from the working directory when present and applies
// CUESPLIT_* overrides. Variables already set in the process environment win
// over .env entries.
func (c *Config) applyEnv() error {
	_ = godotenv.Load()

	if value, ok := lookupEnv(EnvLogLevel); ok {
		c.Logging.Level = value
	}
	if value, ok := lookupEnv(EnvLogFormat); ok {
		c.Logging.Format = value
	}
	if value, ok := lookupEnv(EnvHistoryPath); ok {
		c.History.Path = value
	}
	if value, ok := lookupEnv(EnvHistoryEnabled); ok {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", EnvHistoryEnabled, value)
		}
		c.History.Enabled = enabled
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}
