package organizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"cuesplit/internal/logging"
	"cuesplit/internal/services"
	"cuesplit/internal/services/metaflac"
	"cuesplit/internal/textutil"
)

// Track describes one renamed output file.
type Track struct {
	Source   string
	Path     string
	Number   string
	Artist   string
	Title    string
	Duration time.Duration
	// Replaced is set when the rename overwrote an existing file.
	Replaced bool
}

// Name returns the final file name of the track.
func (t Track) Name() string {
	return filepath.Base(t.Path)
}

// Organizer renames tagged tracks.
type Organizer struct {
	tags    metaflac.Reader
	inspect func(string) (time.Duration, error)
	logger  *slog.Logger
}

// NewOrganizer constructs an organizer reading tags through reader.
func NewOrganizer(reader metaflac.Reader, logger *slog.Logger) *Organizer {
	return &Organizer{
		tags:    reader,
		inspect: Inspect,
		logger:  logging.NewComponentLogger(logger, "organizer"),
	}
}

// Rename renames every track in order and returns the results. The first
// tag read or rename failure stops processing and is returned together with
// the tracks renamed so far.
func (o *Organizer) Rename(ctx context.Context, tracks []string) ([]Track, error) {
	logger := logging.WithContext(services.WithStage(ctx, "rename"), o.logger)
	renamed := make([]Track, 0, len(tracks))
	for _, source := range tracks {
		if err := ctx.Err(); err != nil {
			return renamed, err
		}
		track, err := o.renameOne(ctx, logger, source)
		if err != nil {
			return renamed, err
		}
		renamed = append(renamed, track)
	}
	return renamed, nil
}

func (o *Organizer) renameOne(ctx context.Context, logger *slog.Logger, source string) (Track, error) {
	track := Track{Source: source}
	values := make(map[string]string, 3)
	for _, tag := range []string{metaflac.TagTrackNumber, metaflac.TagArtist, metaflac.TagTitle} {
		value, err := o.tags.ShowTag(ctx, source, tag)
		if err != nil {
			return track, err
		}
		values[tag] = value
	}
	track.Number = values[metaflac.TagTrackNumber]
	track.Artist = values[metaflac.TagArtist]
	track.Title = values[metaflac.TagTitle]
	track.Path = filepath.Join(filepath.Dir(source), textutil.TrackFileName(track.Number, track.Artist, track.Title))

	if track.Path != source {
		if _, err := os.Lstat(track.Path); err == nil {
			track.Replaced = true
			logging.WarnWithContext(logger, "rename target exists; replacing", "rename_collision",
				logging.String("source", source),
				logging.String("target", track.Path),
				logging.String(logging.FieldErrorHint, "check the CUE sheet for duplicate track titles"),
				logging.String(logging.FieldImpact, "earlier track overwritten"),
			)
		} else if !errors.Is(err, os.ErrNotExist) {
			return track, services.Wrap(services.ErrFilesystem, "rename", "stat target", track.Path, err)
		}
		if err := os.Rename(source, track.Path); err != nil {
			return track, services.Wrap(services.ErrFilesystem, "rename", "rename track", fmt.Sprintf("%s => %s", source, track.Path), err)
		}
	}
	logger.Info("track renamed",
		logging.String("source", filepath.Base(source)),
		logging.String("target", track.Name()),
	)

	if duration, err := o.inspect(track.Path); err != nil {
		logger.Debug("track inspection skipped", logging.String("path", track.Path), logging.Error(err))
	} else {
		track.Duration = duration
	}
	return track, nil
}
