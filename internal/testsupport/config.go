package testsupport

import (
	"path/filepath"
	"testing"

	"cuesplit/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// History is written under the temp directory so tests never touch $HOME.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.History.Path = filepath.Join(base, "history", "history.db")
	cfgVal.Logging.Level = "debug"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithoutHistory disables the run history database.
func WithoutHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = false
	}
}

// WithFakeTools installs the fake audio tools into a private bin directory and
// replaces PATH with it, so only the listed tools (or all of them when names
// is empty) resolve.
func WithFakeTools(names ...string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		InstallFakeTools(b.t, binDir, names...)
		b.t.Setenv("PATH", binDir)
	}
}
