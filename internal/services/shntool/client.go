package shntool

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"cuesplit/internal/services"
)

var commandContext = exec.CommandContext

// OutputFormat is the shnsplit output format; the tagging and renaming stages
// only understand FLAC.
const OutputFormat = "flac"

// Client defines the split and tag operations used by the pipeline.
type Client interface {
	Split(ctx context.Context, cuePath, imagePath, outputDir string) error
	Tag(ctx context.Context, cuePath string, tracks []string) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBreakpointsBinary overrides the cuebreakpoints executable.
func WithBreakpointsBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.breakpoints = binary
		}
	}
}

// WithSplitBinary overrides the shnsplit executable.
func WithSplitBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.splitter = binary
		}
	}
}

// WithTagBinary overrides the cuetag executable.
func WithTagBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.tagger = binary
		}
	}
}

// CLI shells out to cuebreakpoints, shnsplit, and cuetag.
type CLI struct {
	breakpoints string
	splitter    string
	tagger      string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{breakpoints: "cuebreakpoints", splitter: "shnsplit", tagger: "cuetag"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Split writes one FLAC file per CUE track into outputDir.
func (c *CLI) Split(ctx context.Context, cuePath, imagePath, outputDir string) error {
	if cuePath == "" || imagePath == "" {
		return errors.New("split: cue and image paths required")
	}
	if outputDir == "" {
		return errors.New("split: output directory required")
	}

	breakpoints := commandContext(ctx, c.breakpoints, cuePath)                                  //nolint:gosec
	splitter := commandContext(ctx, c.splitter, "-d", outputDir, "-o", OutputFormat, imagePath) //nolint:gosec

	var breakpointsStderr, splitOutput bytes.Buffer
	breakpoints.Stderr = &breakpointsStderr
	splitter.Stdout = &splitOutput
	splitter.Stderr = &splitOutput

	pipe, err := breakpoints.StdoutPipe()
	if err != nil {
		return services.Wrap(services.ErrProcessFailed, "split", c.breakpoints, "stdout pipe", err)
	}
	splitter.Stdin = pipe

	if err := breakpoints.Start(); err != nil {
		return services.CommandError("split", c.breakpoints, "", err)
	}
	if err := splitter.Start(); err != nil {
		_ = breakpoints.Process.Kill()
		_ = breakpoints.Wait()
		return services.CommandError("split", c.splitter, "", err)
	}

	breakpointsErr := breakpoints.Wait()
	splitErr := splitter.Wait()

	if breakpointsErr != nil {
		return services.CommandError("split", c.breakpoints, breakpointsStderr.String(), breakpointsErr)
	}
	if splitErr != nil {
		return services.CommandError("split", c.splitter, splitOutput.String(), splitErr)
	}
	return nil
}

// Tag applies the CUE sheet metadata to tracks in order.
func (c *CLI) Tag(ctx context.Context, cuePath string, tracks []string) error {
	if cuePath == "" {
		return errors.New("tag: cue path required")
	}
	if len(tracks) == 0 {
		return services.Wrap(services.ErrNoInput, "tag", c.tagger, "no tracks to tag", nil)
	}
	args := append([]string{cuePath}, tracks...)
	cmd := commandContext(ctx, c.tagger, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return services.CommandError("tag", c.tagger, string(output), err)
	}
	return nil
}
