package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"cuesplit/internal/services"
)

const (
	imagePattern   = "*.{ape,flac,wav}"
	cuePattern     = "*.cue"
	wavPackPattern = "*.wv"
)

// Options filter the files considered by the scanner.
type Options struct {
	// Exclude holds doublestar patterns matched against file names.
	Exclude []string
}

// Result holds the classified contents of a directory. Both slices contain
// sorted absolute paths.
type Result struct {
	Cues   []string
	Images []string
}

// Empty reports whether nothing was found.
func (r Result) Empty() bool {
	return len(r.Cues) == 0 && len(r.Images) == 0
}

// HasFormat reports whether any image has the given extension (without dot).
func (r Result) HasFormat(ext string) bool {
	ext = "." + strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, image := range r.Images {
		if strings.ToLower(filepath.Ext(image)) == ext {
			return true
		}
	}
	return false
}

// Collect classifies the top-level files of dir. A missing directory yields
// an empty result; an empty result is returned together with an error marked
// services.ErrNoInput.
func Collect(dir string, opts Options) (Result, error) {
	files, err := listFiles(dir, opts)
	if err != nil {
		return Result{}, err
	}

	var result Result
	for _, path := range files {
		name := strings.ToLower(filepath.Base(path))
		switch {
		case matches(cuePattern, name):
			result.Cues = append(result.Cues, path)
		case matches(imagePattern, name):
			result.Images = append(result.Images, path)
		}
	}
	if result.Empty() {
		return result, services.Wrap(services.ErrNoInput, "scan", "collect", fmt.Sprintf("no cue sheets or images in %s", dir), nil)
	}
	return result, nil
}

// WavPackFiles returns the sorted absolute paths of the .wv files in dir.
func WavPackFiles(dir string, opts Options) ([]string, error) {
	files, err := listFiles(dir, opts)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, path := range files {
		if matches(wavPackPattern, strings.ToLower(filepath.Base(path))) {
			out = append(out, path)
		}
	}
	return out, nil
}

func listFiles(dir string, opts Options) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrFilesystem, "scan", "resolve directory", dir, err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, services.Wrap(services.ErrFilesystem, "scan", "read directory", abs, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if excluded(entry.Name(), opts.Exclude) {
			continue
		}
		files = append(files, filepath.Join(abs, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func excluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matches(pattern, name) {
			return true
		}
	}
	return false
}

// matches treats an invalid pattern as a non-match; config validation rejects
// invalid exclude patterns before a scan runs.
func matches(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}
