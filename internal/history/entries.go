package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Status is the outcome recorded for a pair.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// DefaultListLimit caps List when no positive limit is given.
const DefaultListLimit = 20

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Entry is one history row.
type Entry struct {
	ID           int64
	RunID        string
	ImagePath    string
	CuePath      string
	OutputDir    string
	TrackCount   int
	Status       Status
	ErrorKind    string
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Record inserts entry and returns its row id.
func (s *Store) Record(ctx context.Context, entry Entry) (int64, error) {
	if entry.FinishedAt.IsZero() {
		entry.FinishedAt = time.Now()
	}
	if entry.StartedAt.IsZero() {
		entry.StartedAt = entry.FinishedAt
	}
	if entry.Status == "" {
		entry.Status = StatusSucceeded
	}

	var res sql.Result
	err := retryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(ctx,
			`INSERT INTO runs_history (
                run_id, image_path, cue_path, output_dir, track_count,
                status, error_kind, error_message, started_at, finished_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			entry.RunID,
			entry.ImagePath,
			entry.CuePath,
			nullable(entry.OutputDir),
			entry.TrackCount,
			string(entry.Status),
			nullable(entry.ErrorKind),
			nullable(entry.ErrorMessage),
			entry.StartedAt.UTC().Format(timeLayout),
			entry.FinishedAt.UTC().Format(timeLayout),
		)
		return execErr
	})
	if err != nil {
		return 0, fmt.Errorf("insert history entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history entry id: %w", err)
	}
	return id, nil
}

// List returns the most recent entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, image_path, cue_path, output_dir, track_count,
                status, error_kind, error_message, started_at, finished_at
         FROM runs_history
         ORDER BY finished_at DESC, id DESC
         LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		entry                   Entry
		outputDir, kind, msg    sql.NullString
		status, started, finish string
	)
	if err := rows.Scan(
		&entry.ID, &entry.RunID, &entry.ImagePath, &entry.CuePath, &outputDir, &entry.TrackCount,
		&status, &kind, &msg, &started, &finish,
	); err != nil {
		return Entry{}, fmt.Errorf("scan history row: %w", err)
	}
	entry.OutputDir = outputDir.String
	entry.Status = Status(status)
	entry.ErrorKind = kind.String
	entry.ErrorMessage = msg.String
	entry.StartedAt = parseTime(started)
	entry.FinishedAt = parseTime(finish)
	return entry, nil
}

func parseTime(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
