package splitter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuesplit/internal/logging"
	"cuesplit/internal/matcher"
	"cuesplit/internal/services"
	"cuesplit/internal/services/shntool"
)

const stagingPrefix = ".cuesplit-split-"

// DecoderCheck verifies that the decoder for a given image format is present.
type DecoderCheck func() error

// Output describes the result of a successful split.
type Output struct {
	Dir    string
	Tracks []string
}

// Splitter runs the split and tag steps for a pair.
type Splitter struct {
	tools    shntool.Client
	checkAPE DecoderCheck
	logger   *slog.Logger

	apeChecked bool
	apeErr     error
}

// New constructs a Splitter. checkAPE may be nil when APE support is not verified.
func New(tools shntool.Client, checkAPE DecoderCheck, logger *slog.Logger) *Splitter {
	return &Splitter{
		tools:    tools,
		checkAPE: checkAPE,
		logger:   logging.NewComponentLogger(logger, "splitter"),
	}
}

// OutputDir returns the directory the tracks of image are written to.
func OutputDir(image string) string {
	return matcher.BaseName(image)
}

// Split processes one pair. A missing APE decoder is returned marked
// services.ErrToolMissing and must abort the run; every other error is
// scoped to the pair.
func (s *Splitter) Split(ctx context.Context, pair matcher.Pair) (Output, error) {
	if strings.EqualFold(filepath.Ext(pair.Image), ".ape") {
		if err := s.ensureAPE(); err != nil {
			return Output{}, err
		}
	}

	outDir := OutputDir(pair.Image)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Output{}, services.Wrap(services.ErrFilesystem, "split", "create output directory", outDir, err)
	}

	logger := logging.WithContext(ctx, s.logger)
	logger.Info("splitting image",
		logging.String("cue", pair.Cue),
		logging.String("output_dir", outDir),
	)

	// Only the tracks of this split are tagged; outDir may hold an earlier run's files.
	staging, err := os.MkdirTemp(outDir, stagingPrefix)
	if err != nil {
		return Output{Dir: outDir}, services.Wrap(services.ErrFilesystem, "split", "create staging directory", outDir, err)
	}
	defer func() {
		if err := os.RemoveAll(staging); err != nil {
			logger.Debug("staging cleanup failed", logging.String("staging_dir", staging), logging.Error(err))
		}
	}()

	if err := s.tools.Split(ctx, pair.Cue, pair.Image, staging); err != nil {
		return Output{Dir: outDir}, err
	}

	split, err := Tracks(staging)
	if err != nil {
		return Output{Dir: outDir}, err
	}
	if len(split) == 0 {
		return Output{Dir: outDir}, services.Wrap(services.ErrProcessFailed, "split", "collect tracks",
			fmt.Sprintf("splitter produced no tracks for %s", pair.Image), nil)
	}
	tracks, err := moveTracks(split, outDir)
	if err != nil {
		return Output{Dir: outDir, Tracks: tracks}, err
	}

	if err := s.tools.Tag(ctx, pair.Cue, tracks); err != nil {
		return Output{Dir: outDir, Tracks: tracks}, err
	}
	logger.Debug("tracks tagged", logging.Int("track_count", len(tracks)))
	return Output{Dir: outDir, Tracks: tracks}, nil
}

// Tracks returns the sorted .flac files in dir.
func Tracks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrFilesystem, "split", "list tracks", dir, err)
	}
	var tracks []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), "."+shntool.OutputFormat) {
			tracks = append(tracks, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(tracks)
	return tracks, nil
}

// moveTracks moves the staged tracks into dir, replacing files of the same
// name, and returns their new paths in order.
func moveTracks(staged []string, dir string) ([]string, error) {
	moved := make([]string, 0, len(staged))
	for _, src := range staged {
		dst := filepath.Join(dir, filepath.Base(src))
		if err := os.Rename(src, dst); err != nil {
			return moved, services.Wrap(services.ErrFilesystem, "split", "move track", dst, err)
		}
		moved = append(moved, dst)
	}
	return moved, nil
}

func (s *Splitter) ensureAPE() error {
	if s.checkAPE == nil {
		return nil
	}
	if !s.apeChecked {
		s.apeErr = s.checkAPE()
		s.apeChecked = true
		if s.apeErr != nil && !errors.Is(s.apeErr, services.ErrToolMissing) {
			s.apeErr = services.Wrap(services.ErrToolMissing, "split", "check ape decoder", "", s.apeErr)
		}
	}
	return s.apeErr
}
