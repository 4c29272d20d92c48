package workflow

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"cuesplit/internal/deps"
	"cuesplit/internal/logging"
	"cuesplit/internal/matcher"
	"cuesplit/internal/organizer"
	"cuesplit/internal/preflight"
	"cuesplit/internal/scan"
	"cuesplit/internal/services"
	"cuesplit/internal/splitter"
)

// Run processes opts.Dir. The returned report is never nil; the error is set
// when the run was aborted (missing tools, lock held, cancellation) or when
// the directory held nothing to process.
func (m *Manager) Run(ctx context.Context, opts Options) (*Report, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, m.logger)

	report := &Report{RunID: runID, DryRun: opts.DryRun, StartedAt: time.Now()}
	defer func() { report.FinishedAt = time.Now() }()

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return report, services.Wrap(services.ErrFilesystem, "scan", "resolve directory", dir, err)
	}
	report.Dir = abs

	if !opts.DryRun {
		if _, err := preflight.CheckTools(preflight.CoreRequirements(m.cfg)); err != nil {
			logging.ErrorWithContext(logger, "required tools missing", "preflight_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "install the packages named above or set [tools] in the config"),
			)
			return report, err
		}
	}

	access := preflight.CheckDirectoryAccess("target directory", abs)
	dirExists := true
	if !access.Passed {
		if info, statErr := os.Stat(abs); statErr != nil || !info.IsDir() {
			dirExists = false
		}
		logging.WarnWithContext(logger, "target directory check failed", "target_unavailable",
			logging.String("detail", access.Detail),
			logging.String(logging.FieldImpact, "nothing may be found to process"),
		)
	}

	if !opts.DryRun && dirExists {
		lock, err := acquireDirLock(abs)
		if err != nil {
			return report, err
		}
		defer func() {
			if err := lock.release(); err != nil {
				logger.Warn("failed to release directory lock", logging.Error(err))
			}
		}()
	}

	scanOpts := scan.Options{Exclude: m.cfg.Scan.Exclude}
	if err := m.unpackWavPack(ctx, logger, abs, scanOpts, opts.DryRun, report); err != nil {
		return report, err
	}

	found, err := scan.Collect(abs, scanOpts)
	if err != nil {
		logger.Warn("no cue sheets or images found", logging.String("dir", abs))
		return report, err
	}
	logger.Info("directory scanned",
		logging.Int("cue_count", len(found.Cues)),
		logging.Int("image_count", len(found.Images)),
	)

	pairs, ambiguities := matcher.Match(found.Cues, found.Images)
	report.Ambiguities = ambiguities
	for _, ambiguity := range ambiguities {
		logging.WarnWithContext(logger, "ambiguous match skipped", "ambiguous_match",
			logging.String("cue", ambiguity.Cue),
			logging.String(logging.FieldImage, ambiguity.Image),
			logging.String("reason", ambiguity.Reason),
			logging.String("kept", ambiguity.Winning),
			logging.String(logging.FieldImpact, "candidate not processed"),
		)
	}
	if len(pairs) == 0 {
		logger.Warn("no cue sheet matches an image", logging.String("dir", abs))
	}

	if opts.DryRun {
		for _, pair := range pairs {
			report.Pairs = append(report.Pairs, PairResult{Pair: pair, OutputDir: splitter.OutputDir(pair.Image)})
		}
		return report, nil
	}

	recorder, closer := m.openHistory(ctx, logger)
	if closer != nil {
		defer closer.Close()
	}

	var checkAPE splitter.DecoderCheck
	if found.HasFormat("ape") {
		checkAPE = m.checkAPE
	}
	split := splitter.New(m.tools, checkAPE, m.base)
	renamer := organizer.NewOrganizer(m.tags, m.base)
	removeSource := opts.RemoveSource || m.cfg.Split.RemoveSource
	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		started := time.Now()
		result, fatal := m.processPair(ctx, split, renamer, pair, removeSource)
		result.Duration = time.Since(started)
		if fatal != nil {
			logging.ErrorWithContext(logger, "run aborted", "run_aborted",
				logging.String(logging.FieldImage, pair.Image),
				logging.Error(fatal),
			)
			return report, fatal
		}
		report.Pairs = append(report.Pairs, result)
		m.recordHistory(ctx, logger, recorder, runID, result, started)
	}

	logger.Info("run finished",
		logging.Int("pairs", len(report.Pairs)),
		logging.Int("failed_pairs", report.FailedPairs()),
		logging.Int("failed_unpacks", report.FailedUnpacks()),
		logging.Int("tracks", report.TrackCount()),
	)
	return report, nil
}

func (m *Manager) unpackWavPack(ctx context.Context, logger *slog.Logger, dir string, opts scan.Options, dryRun bool, report *Report) error {
	sources, err := scan.WavPackFiles(dir, opts)
	if err != nil || len(sources) == 0 {
		return err
	}
	if dryRun {
		report.PendingWV = sources
		return nil
	}
	if _, err := preflight.CheckTools([]deps.Requirement{preflight.WavPackRequirement(m.cfg)}); err != nil {
		logging.ErrorWithContext(logger, "wavpack decoder missing", "preflight_failed",
			logging.Error(err),
			logging.Int("wv_count", len(sources)),
		)
		return err
	}
	unpackCtx := services.WithStage(ctx, "unpack")
	results, err := scan.Unpack(unpackCtx, dir, m.unpacker, opts, m.base)
	report.Unpacked = results
	return err
}

// processPair returns a non-nil fatal error only when the whole run must stop.
func (m *Manager) processPair(ctx context.Context, split *splitter.Splitter, renamer *organizer.Organizer, pair matcher.Pair, removeSource bool) (PairResult, error) {
	ctx = services.WithStage(services.WithImage(ctx, pair.Image), "split")
	logger := logging.WithContext(ctx, m.logger)
	result := PairResult{Pair: pair, OutputDir: splitter.OutputDir(pair.Image)}

	out, err := split.Split(ctx, pair)
	if err != nil {
		if services.IsFatal(err) || errors.Is(err, context.Canceled) {
			return result, err
		}
		result.Err = err
		m.logPairFailure(logger, pair, err)
		return result, nil
	}

	tracks, err := renamer.Rename(ctx, out.Tracks)
	result.Tracks = tracks
	if err != nil {
		if services.IsFatal(err) || errors.Is(err, context.Canceled) {
			return result, err
		}
		result.Err = err
		m.logPairFailure(logger, pair, err)
		return result, nil
	}

	if removeSource {
		if err := removeSources(pair); err != nil {
			result.Err = err
			m.logPairFailure(logger, pair, err)
			return result, nil
		}
		result.Removed = true
	}
	logger.Info("image split",
		logging.String("cue", pair.Cue),
		logging.String("output_dir", result.OutputDir),
		logging.Int("track_count", len(tracks)),
		logging.Bool("sources_removed", result.Removed),
	)
	return result, nil
}

func (m *Manager) logPairFailure(logger *slog.Logger, pair matcher.Pair, err error) {
	logging.ErrorWithContext(logger, "failed to split image", "pair_failed",
		logging.String("cue", pair.Cue),
		logging.String("error_kind", string(services.KindOf(err))),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "rerun with --log-level debug for tool output"),
	)
}

func removeSources(pair matcher.Pair) error {
	for _, path := range []string{pair.Image, pair.Cue} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return services.Wrap(services.ErrFilesystem, "remove", "remove source", path, err)
		}
	}
	return nil
}
