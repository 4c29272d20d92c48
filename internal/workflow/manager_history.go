package workflow

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"cuesplit/internal/history"
	"cuesplit/internal/logging"
	"cuesplit/internal/services"
)

// HistoryRecorder persists pair outcomes.
type HistoryRecorder interface {
	Record(ctx context.Context, entry history.Entry) (int64, error)
}

// openHistory returns the recorder for this run and a closer. A database that
// cannot be opened disables history for the run with a warning.
func (m *Manager) openHistory(ctx context.Context, logger *slog.Logger) (HistoryRecorder, io.Closer) {
	if m.history != nil {
		return m.history, nil
	}
	if !m.cfg.History.Enabled {
		return nil, nil
	}
	store, err := history.Open(ctx, m.cfg.History.Path)
	if err != nil {
		logging.WarnWithContext(logger, "history unavailable", "history_open_failed",
			logging.String("path", m.cfg.History.Path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check [history] path or set enabled = false"),
			logging.String(logging.FieldImpact, "run continues without history"),
		)
		return nil, nil
	}
	return store, store
}

func (m *Manager) recordHistory(ctx context.Context, logger *slog.Logger, recorder HistoryRecorder, runID string, result PairResult, started time.Time) {
	if recorder == nil {
		return
	}
	entry := history.Entry{
		RunID:      runID,
		ImagePath:  result.Pair.Image,
		CuePath:    result.Pair.Cue,
		OutputDir:  result.OutputDir,
		TrackCount: len(result.Tracks),
		Status:     history.StatusSucceeded,
		StartedAt:  started,
		FinishedAt: started.Add(result.Duration),
	}
	if result.Err != nil {
		entry.Status = history.StatusFailed
		entry.ErrorKind = string(services.KindOf(result.Err))
		entry.ErrorMessage = result.Err.Error()
	}
	// The pair's own context may be cancelled; history still gets the outcome.
	if _, err := recorder.Record(context.WithoutCancel(ctx), entry); err != nil && !errors.Is(err, context.Canceled) {
		logging.WarnWithContext(logger, "history write failed", "history_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "pair outcome not recorded"),
		)
	}
}
