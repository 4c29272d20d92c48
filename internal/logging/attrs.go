package logging

import (
	"context"
	"log/slog"
	"slices"
)

// Attribute constructors re-exported so callers import a single package.

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func String(key string, value string) slog.Attr { return slog.String(key, value) }

// Error records err under the "error" key; a nil error is logged as "<nil>".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// NewNop returns a logger that discards every record.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewComponentLogger tags logger with the component name. A nil logger
// becomes a no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// WarnWithContext logs a warning that always carries event_type, error_hint
// and impact. Caller-supplied values take precedence over the defaults.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...slog.Attr) {
	if logger == nil {
		return
	}
	logger.LogAttrs(context.Background(), slog.LevelWarn, msg, withDefaults(attrs,
		String(FieldEventType, eventType),
		String(FieldErrorHint, "see the error field"),
		String(FieldImpact, "run continues"),
	)...)
}

// ErrorWithContext logs an error that always carries event_type and error_hint.
func ErrorWithContext(logger *slog.Logger, msg, eventType string, attrs ...slog.Attr) {
	if logger == nil {
		return
	}
	logger.LogAttrs(context.Background(), slog.LevelError, msg, withDefaults(attrs,
		String(FieldEventType, eventType),
		String(FieldErrorHint, "see the error field"),
	)...)
}

// withDefaults appends each default whose key attrs does not already set.
func withDefaults(attrs []slog.Attr, defaults ...slog.Attr) []slog.Attr {
	out := slices.Clone(attrs)
	for _, def := range defaults {
		if !slices.ContainsFunc(attrs, func(a slog.Attr) bool { return a.Key == def.Key }) {
			out = append(out, def)
		}
	}
	return out
}
