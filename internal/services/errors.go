package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrToolMissing   = errors.New("external tool missing")
	ErrProcessFailed = errors.New("external process failed")
	ErrFilesystem    = errors.New("filesystem error")
	ErrNoInput       = errors.New("no input found")
	ErrConfiguration = errors.New("configuration error")
)

// Kind names the error class of err for reports and history rows.
type Kind string

const (
	KindNone          Kind = ""
	KindToolMissing   Kind = "tool_missing"
	KindProcessFailed Kind = "process_failed"
	KindFilesystem    Kind = "filesystem"
	KindNoInput       Kind = "no_input"
	KindConfiguration Kind = "configuration"
	KindUnknown       Kind = "unknown"
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrProcessFailed
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// KindOf maps err onto its error class.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrToolMissing):
		return KindToolMissing
	case errors.Is(err, ErrProcessFailed):
		return KindProcessFailed
	case errors.Is(err, ErrFilesystem):
		return KindFilesystem
	case errors.Is(err, ErrNoInput):
		return KindNoInput
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	default:
		return KindUnknown
	}
}

// IsFatal reports whether err must stop the whole run rather than a single unit of work.
func IsFatal(err error) bool {
	return errors.Is(err, ErrToolMissing) || errors.Is(err, ErrConfiguration)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "operation failed"
	}
	return strings.Join(parts, ": ")
}
