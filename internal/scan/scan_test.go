package scan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"cuesplit/internal/logging"
	"cuesplit/internal/services"
	"cuesplit/internal/testsupport"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		testsupport.WriteText(t, filepath.Join(dir, name), "x\n")
	}
}

func join(dir string, names ...string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, filepath.Join(dir, name))
	}
	return out
}

func TestCollectClassifiesCaseInsensitively(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.FLAC", "a.ape", "a.cue", "B.Cue", "c.wav", "notes.txt", "cover.jpg", "d.wv")
	if err := os.Mkdir(filepath.Join(dir, "a"), 0o755); err != nil {
		t.Fatal(err)
	}
	touch(t, filepath.Join(dir, "a"), "1 - x - y.flac")

	result, err := Collect(dir, Options{})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if want := join(dir, "B.Cue", "a.cue"); !reflect.DeepEqual(result.Cues, want) {
		t.Fatalf("cues = %v, want %v", result.Cues, want)
	}
	if want := join(dir, "a.ape", "b.FLAC", "c.wav"); !reflect.DeepEqual(result.Images, want) {
		t.Fatalf("images = %v, want %v", result.Images, want)
	}
	if !result.HasFormat("ape") || !result.HasFormat(".flac") || result.HasFormat("wv") {
		t.Fatalf("unexpected HasFormat answers for %v", result.Images)
	}
}

func TestCollectRelativeDirectoryReturnsAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "album.flac")
	t.Chdir(dir)

	result, err := Collect(".", Options{})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(result.Images) != 1 || !filepath.IsAbs(result.Images[0]) {
		t.Fatalf("expected one absolute image path, got %v", result.Images)
	}
}

func TestCollectExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "album.flac", "album.cue", "sample.flac", "sample.cue")

	result, err := Collect(dir, Options{Exclude: []string{"sample.*"}})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if !reflect.DeepEqual(result.Images, join(dir, "album.flac")) || !reflect.DeepEqual(result.Cues, join(dir, "album.cue")) {
		t.Fatalf("exclude not applied: %+v", result)
	}
}

func TestCollectEmptyAndMissingDirectories(t *testing.T) {
	for name, dir := range map[string]string{
		"empty":   t.TempDir(),
		"missing": filepath.Join(t.TempDir(), "nope"),
	} {
		t.Run(name, func(t *testing.T) {
			result, err := Collect(dir, Options{})
			if !errors.Is(err, services.ErrNoInput) {
				t.Fatalf("expected ErrNoInput, got %v", err)
			}
			if !result.Empty() {
				t.Fatalf("expected empty result, got %+v", result)
			}
		})
	}
}

type recordingUnpacker struct {
	calls []string
	errs  map[string]error
}

func (r *recordingUnpacker) Unpack(_ context.Context, path string) error {
	r.calls = append(r.calls, path)
	return r.errs[filepath.Base(path)]
}

func TestUnpackContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.wv", "B.WV", "c.wv", "c.flac")
	unpacker := &recordingUnpacker{errs: map[string]error{
		"B.WV": services.Wrap(services.ErrProcessFailed, "unpack", "wvunpack", "bad header", nil),
	}}

	results, err := Unpack(context.Background(), dir, unpacker, Options{}, logging.NewNop())
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if want := join(dir, "B.WV", "a.wv", "c.wv"); !reflect.DeepEqual(unpacker.calls, want) {
		t.Fatalf("calls = %v, want %v", unpacker.calls, want)
	}
	if len(results) != 3 {
		t.Fatalf("expected three results, got %d", len(results))
	}
	if !errors.Is(results[0].Err, services.ErrProcessFailed) || results[1].Err != nil || results[2].Err != nil {
		t.Fatalf("unexpected results %+v", results)
	}
}

func TestUnpackAbortsWhenDecoderMissing(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.wv", "b.wv")
	unpacker := &recordingUnpacker{errs: map[string]error{
		"a.wv": services.Wrap(services.ErrToolMissing, "unpack", "wvunpack", "not found", nil),
	}}

	_, err := Unpack(context.Background(), dir, unpacker, Options{}, nil)
	if !errors.Is(err, services.ErrToolMissing) {
		t.Fatalf("expected ErrToolMissing, got %v", err)
	}
	if len(unpacker.calls) != 1 {
		t.Fatalf("expected abort after first call, got %v", unpacker.calls)
	}
}

func TestUnpackStopsOnCancelledContext(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.wv")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	unpacker := &recordingUnpacker{}
	if _, err := Unpack(ctx, dir, unpacker, Options{}, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(unpacker.calls) != 0 {
		t.Fatalf("unexpected calls %v", unpacker.calls)
	}
}
