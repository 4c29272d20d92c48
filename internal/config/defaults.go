package config

const (
	defaultConfigPath     = "~/.config/cuesplit/config.toml"
	projectConfigName     = "cuesplit.toml"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultHistoryEnabled = true
	defaultHistoryPath    = "~/.local/share/cuesplit/history.db"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			Cuebreakpoints: "cuebreakpoints",
			Shnsplit:       "shnsplit",
			Cuetag:         "cuetag",
			Metaflac:       "metaflac",
			Wvunpack:       "wvunpack",
			Mac:            "mac",
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
			Path:    defaultHistoryPath,
		},
	}
}
