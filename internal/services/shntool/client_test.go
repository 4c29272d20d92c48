package shntool_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"cuesplit/internal/services"
	"cuesplit/internal/services/shntool"
	"cuesplit/internal/testsupport"
)

func TestSplitWritesOneFilePerTrack(t *testing.T) {
	testsupport.NewConfig(t, testsupport.WithFakeTools())
	dir := t.TempDir()
	image, cue := testsupport.WriteAlbum(t, dir, "album.flac",
		testsupport.Track{Performer: "Artist A", Title: "Song One"},
		testsupport.Track{Performer: "Artist A", Title: "Song Two"},
		testsupport.Track{Performer: "Artist A", Title: "Song Three"},
	)
	out := filepath.Join(dir, "album")
	if err := os.Mkdir(out, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := shntool.NewCLI().Split(context.Background(), cue, image, out); err != nil {
		t.Fatalf("Split: %v", err)
	}
	got := testsupport.ListNames(t, out)
	want := []string{"split-track01.flac", "split-track02.flac", "split-track03.flac"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected split output %v", got)
	}
}

func TestSplitReportsProcessFailure(t *testing.T) {
	testsupport.NewConfig(t, testsupport.WithFakeTools())
	dir := t.TempDir()
	image, cue := testsupport.WriteAlbum(t, dir, "broken.wav", testsupport.Track{Performer: "A", Title: "B"})
	testsupport.WriteText(t, image, "CORRUPT\n")

	err := shntool.NewCLI().Split(context.Background(), cue, image, dir)
	if !errors.Is(err, services.ErrProcessFailed) {
		t.Fatalf("expected ErrProcessFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "shnsplit") {
		t.Fatalf("expected splitter named in error, got %v", err)
	}
}

func TestSplitReportsMissingSplitter(t *testing.T) {
	testsupport.NewConfig(t, testsupport.WithFakeTools("cuebreakpoints"))
	dir := t.TempDir()
	image, cue := testsupport.WriteAlbum(t, dir, "album.flac", testsupport.Track{Performer: "A", Title: "B"})

	err := shntool.NewCLI().Split(context.Background(), cue, image, dir)
	if !errors.Is(err, services.ErrToolMissing) {
		t.Fatalf("expected ErrToolMissing, got %v", err)
	}
}

func TestSplitUsesConfiguredBinaries(t *testing.T) {
	binDir := t.TempDir()
	testsupport.InstallFakeTools(t, binDir, "cuebreakpoints", "shnsplit")
	if err := os.Rename(filepath.Join(binDir, "shnsplit"), filepath.Join(binDir, "shnsplit-custom")); err != nil {
		t.Fatalf("rename: %v", err)
	}
	t.Setenv("PATH", binDir)

	dir := t.TempDir()
	image, cue := testsupport.WriteAlbum(t, dir, "album.ape", testsupport.Track{Performer: "A", Title: "B"})
	cli := shntool.NewCLI(shntool.WithSplitBinary(filepath.Join(binDir, "shnsplit-custom")))
	if err := cli.Split(context.Background(), cue, image, dir); err != nil {
		t.Fatalf("Split: %v", err)
	}
	if !testsupport.Exists(filepath.Join(dir, "split-track01.flac")) {
		t.Fatal("expected track from custom splitter")
	}
}

func TestTagAppliesCueMetadata(t *testing.T) {
	testsupport.NewConfig(t, testsupport.WithFakeTools())
	dir := t.TempDir()
	_, cue := testsupport.WriteAlbum(t, dir, "album.flac",
		testsupport.Track{Performer: "Artist A", Title: "Song One"},
		testsupport.Track{Performer: "Artist B", Title: "Song Two"},
	)
	tracks := []string{filepath.Join(dir, "split-track01.flac"), filepath.Join(dir, "split-track02.flac")}
	for _, track := range tracks {
		testsupport.WriteText(t, track, "audio\n")
	}

	if err := shntool.NewCLI().Tag(context.Background(), cue, tracks); err != nil {
		t.Fatalf("Tag: %v", err)
	}
	content, err := os.ReadFile(tracks[1])
	if err != nil {
		t.Fatalf("read track: %v", err)
	}
	for _, want := range []string{"TITLE=Song Two", "ARTIST=Artist B", "TRACKNUMBER=2"} {
		if !strings.Contains(string(content), want) {
			t.Fatalf("expected %q in %q", want, content)
		}
	}
}

func TestTagFailures(t *testing.T) {
	testsupport.NewConfig(t, testsupport.WithFakeTools())
	dir := t.TempDir()
	_, cue := testsupport.WriteAlbum(t, dir, "album.flac", testsupport.Track{Performer: "NOTAG", Title: "x"})

	err := shntool.NewCLI().Tag(context.Background(), cue, []string{filepath.Join(dir, "a.flac")})
	if !errors.Is(err, services.ErrProcessFailed) {
		t.Fatalf("expected ErrProcessFailed, got %v", err)
	}
	err = shntool.NewCLI().Tag(context.Background(), cue, nil)
	if !errors.Is(err, services.ErrNoInput) {
		t.Fatalf("expected ErrNoInput for empty track list, got %v", err)
	}
}
