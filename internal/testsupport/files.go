package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Track describes one CUE sheet entry.
type Track struct {
	Performer string
	Title     string
}

// CueSheet renders a minimal CUE sheet referencing image.
func CueSheet(image string, tracks ...Track) string {
	var b strings.Builder
	fmt.Fprintf(&b, "REM GENRE Rock\nTITLE \"Test Album\"\nFILE \"%s\" WAVE\n", image)
	for i, track := range tracks {
		fmt.Fprintf(&b, "  TRACK %02d AUDIO\n", i+1)
		fmt.Fprintf(&b, "    TITLE \"%s\"\n", track.Title)
		fmt.Fprintf(&b, "    PERFORMER \"%s\"\n", track.Performer)
		fmt.Fprintf(&b, "    INDEX 01 %02d:00:00\n", i)
	}
	return b.String()
}

// WriteAlbum writes dir/<name> as an image and dir/<base>.cue describing tracks.
// It returns the absolute image and cue paths.
func WriteAlbum(t testing.TB, dir, name string, tracks ...Track) (string, string) {
	t.Helper()

	image := filepath.Join(dir, name)
	cue := strings.TrimSuffix(image, filepath.Ext(image)) + ".cue"
	WriteText(t, image, "audio image\n")
	WriteText(t, cue, CueSheet(name, tracks...))
	return image, cue
}

// WriteText writes content to path, creating parent directories.
func WriteText(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ListNames returns the sorted base names of the entries in dir.
func ListNames(t testing.TB, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
