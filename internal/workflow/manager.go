package workflow

import (
	"log/slog"

	"cuesplit/internal/config"
	"cuesplit/internal/deps"
	"cuesplit/internal/logging"
	"cuesplit/internal/preflight"
	"cuesplit/internal/scan"
	"cuesplit/internal/services/metaflac"
	"cuesplit/internal/services/shntool"
	"cuesplit/internal/services/wavpack"
)

// Manager runs the split pipeline with a fixed configuration.
type Manager struct {
	cfg    *config.Config
	base   *slog.Logger
	logger *slog.Logger

	tools    shntool.Client
	tags     metaflac.Reader
	unpacker scan.Unpacker
	history  HistoryRecorder
	checkAPE func() error
}

// ManagerOption configures optional Manager behavior.
type ManagerOption func(*Manager)

// WithShntool replaces the split and tag client (used in tests).
func WithShntool(client shntool.Client) ManagerOption {
	return func(m *Manager) { m.tools = client }
}

// WithTagReader replaces the metaflac reader (used in tests).
func WithTagReader(reader metaflac.Reader) ManagerOption {
	return func(m *Manager) { m.tags = reader }
}

// WithUnpacker replaces the WavPack unpacker (used in tests).
func WithUnpacker(unpacker scan.Unpacker) ManagerOption {
	return func(m *Manager) { m.unpacker = unpacker }
}

// WithHistory records pair outcomes into recorder instead of the configured
// history database.
func WithHistory(recorder HistoryRecorder) ManagerOption {
	return func(m *Manager) { m.history = recorder }
}

// NewManager constructs a workflow manager whose tool clients are built from cfg.
func NewManager(cfg *config.Config, logger *slog.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{
		cfg:    cfg,
		base:   logger,
		logger: logging.NewComponentLogger(logger, "workflow"),
		tools: shntool.NewCLI(
			shntool.WithBreakpointsBinary(cfg.Tools.Cuebreakpoints),
			shntool.WithSplitBinary(cfg.Tools.Shnsplit),
			shntool.WithTagBinary(cfg.Tools.Cuetag),
		),
		tags:     metaflac.NewCLI(cfg.Tools.Metaflac),
		unpacker: wavpack.NewCLI(cfg.Tools.Wvunpack),
	}
	m.checkAPE = func() error {
		_, err := preflight.CheckTools([]deps.Requirement{preflight.APERequirement(cfg)})
		return err
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}
