package workflow

import (
	"time"

	"cuesplit/internal/matcher"
	"cuesplit/internal/organizer"
	"cuesplit/internal/scan"
)

// Options select the directory and behaviour of one run.
type Options struct {
	Dir string
	// RemoveSource deletes the image and CUE sheet after a successful split.
	RemoveSource bool
	// DryRun scans and matches without running any tool or touching files.
	DryRun bool
}

// PairResult is the outcome of one image/CUE pair.
type PairResult struct {
	Pair      matcher.Pair
	OutputDir string
	Tracks    []organizer.Track
	Removed   bool
	Err       error
	Duration  time.Duration
}

// OK reports whether the pair was split, tagged, and renamed.
func (r PairResult) OK() bool {
	return r.Err == nil
}

// Report summarises a run.
type Report struct {
	RunID       string
	Dir         string
	DryRun      bool
	Unpacked    []scan.UnpackResult
	PendingWV   []string
	Ambiguities []matcher.Ambiguity
	Pairs       []PairResult
	StartedAt   time.Time
	FinishedAt  time.Time
}

// OK reports whether every unpack and every pair succeeded.
func (r *Report) OK() bool {
	if r == nil {
		return false
	}
	return r.FailedUnpacks() == 0 && r.FailedPairs() == 0
}

// FailedPairs counts the pairs that did not complete.
func (r *Report) FailedPairs() int {
	failed := 0
	for _, pair := range r.Pairs {
		if !pair.OK() {
			failed++
		}
	}
	return failed
}

// FailedUnpacks counts the WavPack files that could not be unpacked.
func (r *Report) FailedUnpacks() int {
	failed := 0
	for _, unpack := range r.Unpacked {
		if unpack.Err != nil {
			failed++
		}
	}
	return failed
}

// TrackCount returns the number of renamed tracks across all pairs.
func (r *Report) TrackCount() int {
	total := 0
	for _, pair := range r.Pairs {
		total += len(pair.Tracks)
	}
	return total
}
