package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"cuesplit/internal/workflow"
)

type palette struct {
	ok   *color.Color
	fail *color.Color
	warn *color.Color
	dim  *color.Color
}

func newPalette(colorize bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		ok:   mk(color.FgGreen),
		fail: mk(color.FgRed),
		warn: mk(color.FgYellow),
		dim:  mk(color.Faint),
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// renderReport writes the user-facing result of a run. Log lines go to
// stderr separately.
func renderReport(w io.Writer, report *workflow.Report, colorize bool) {
	if report == nil {
		return
	}
	p := newPalette(colorize)

	for _, unpack := range report.Unpacked {
		if unpack.Err != nil {
			fmt.Fprintf(w, "%s wvunpack failed on %s: %v\n", p.fail.Sprint("Error:"), unpack.Source, unpack.Err)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", p.ok.Sprint("Unpacked:"), unpack.Source)
	}
	for _, ambiguity := range report.Ambiguities {
		fmt.Fprintf(w, "%s skipped %s for %s (%s)\n", p.warn.Sprint("Warning:"), ambiguity.Image, ambiguity.Cue, ambiguity.Reason)
	}

	if report.DryRun {
		renderDryRun(w, report, p)
		return
	}

	for _, pair := range report.Pairs {
		image := filepath.Base(pair.Pair.Image)
		cue := filepath.Base(pair.Pair.Cue)
		if !pair.OK() {
			fmt.Fprintf(w, "%s failed to split %s with %s: %v\n", p.fail.Sprint("Error:"), image, cue, pair.Err)
			continue
		}
		fmt.Fprintf(w, "%s split %s with %s\n", p.ok.Sprint("Success:"), image, cue)
		if len(pair.Tracks) > 0 {
			fmt.Fprintln(w, renderTracks(pair))
		}
		if pair.Removed {
			fmt.Fprintf(w, "%s\n", p.dim.Sprintf("Removed %s and %s", image, cue))
		}
	}

	if len(report.Pairs) == 0 && len(report.Unpacked) == 0 {
		return
	}
	summary := fmt.Sprintf("%d pair(s), %d failed, %d track(s) in %s",
		len(report.Pairs), report.FailedPairs(), report.TrackCount(),
		report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
	if report.OK() {
		fmt.Fprintln(w, p.ok.Sprint(summary))
	} else {
		fmt.Fprintln(w, p.fail.Sprint(summary))
	}
}

func renderTracks(pair workflow.PairResult) string {
	rows := make([][]string, 0, len(pair.Tracks))
	for _, track := range pair.Tracks {
		rows = append(rows, []string{
			filepath.Base(track.Source),
			track.Name(),
			formatDuration(track.Duration),
		})
	}
	return renderTable([]column{textColumn("Split"), wrapColumn("Renamed"), numberColumn("Length")}, rows)
}

func renderDryRun(w io.Writer, report *workflow.Report, p palette) {
	for _, source := range report.PendingWV {
		fmt.Fprintf(w, "%s %s\n", p.dim.Sprint("Would unpack:"), source)
	}
	if len(report.Pairs) == 0 {
		fmt.Fprintln(w, "No image matches a CUE sheet")
		return
	}
	rows := make([][]string, 0, len(report.Pairs))
	for _, pair := range report.Pairs {
		rows = append(rows, []string{
			filepath.Base(pair.Pair.Image),
			filepath.Base(pair.Pair.Cue),
			pair.OutputDir,
		})
	}
	fmt.Fprintln(w, renderTable([]column{textColumn("Image"), textColumn("CUE"), textColumn("Output")}, rows))
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	d = d.Round(time.Second)
	minutes := int(d / time.Minute)
	seconds := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
