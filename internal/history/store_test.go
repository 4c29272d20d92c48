package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := Entry{
		RunID:      "run-1",
		ImagePath:  "/music/a.flac",
		CuePath:    "/music/a.cue",
		OutputDir:  "/music/a",
		TrackCount: 3,
		Status:     StatusSucceeded,
		StartedAt:  base,
		FinishedAt: base.Add(2 * time.Second),
	}
	second := Entry{
		RunID:        "run-1",
		ImagePath:    "/music/b.ape",
		CuePath:      "/music/b.cue",
		Status:       StatusFailed,
		ErrorKind:    "process_failed",
		ErrorMessage: "shnsplit exited 1",
		StartedAt:    base.Add(3 * time.Second),
		FinishedAt:   base.Add(3*time.Second + 500*time.Millisecond),
	}
	for _, entry := range []Entry{first, second} {
		if _, err := store.Record(ctx, entry); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	got := entries[0]
	if got.ImagePath != second.ImagePath || got.Status != StatusFailed || got.ErrorKind != "process_failed" {
		t.Fatalf("expected newest entry first, got %+v", got)
	}
	if got.OutputDir != "" {
		t.Fatalf("expected empty output dir, got %q", got.OutputDir)
	}
	if !got.FinishedAt.Equal(second.FinishedAt) {
		t.Fatalf("finished_at = %v, want %v", got.FinishedAt, second.FinishedAt)
	}
	if entries[1].TrackCount != 3 || entries[1].OutputDir != "/music/a" {
		t.Fatalf("unexpected older entry %+v", entries[1])
	}
}

func TestListLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := store.Record(ctx, Entry{RunID: "r", ImagePath: "/i", CuePath: "/c"}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	entries, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected limit to apply, got %d", len(entries))
	}
	if entries[0].Status != StatusSucceeded {
		t.Fatalf("expected default status, got %q", entries[0].Status)
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Record(ctx, Entry{RunID: "r", ImagePath: "/i", CuePath: "/c"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	store, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()
	entries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || store.Path() != path {
		t.Fatalf("unexpected state after reopen: %d entries, path %q", len(entries), store.Path())
	}
}

func TestSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()
	store, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.db.ExecContext(ctx, "UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("update version: %v", err)
	}
	_ = store.Close()

	if _, err := Open(ctx, path); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open(context.Background(), " "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestIsSQLiteBusy(t *testing.T) {
	if isSQLiteBusy(nil) || isSQLiteBusy(errors.New("boom")) {
		t.Fatal("unexpected busy classification")
	}
	if !isSQLiteBusy(errors.New("database is locked (5) (SQLITE_BUSY)")) {
		t.Fatal("expected busy classification")
	}
}
