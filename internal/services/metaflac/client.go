package metaflac

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"cuesplit/internal/services"
)

var commandContext = exec.CommandContext

// Tag names read back from split tracks.
const (
	TagTrackNumber = "TRACKNUMBER"
	TagArtist      = "ARTIST"
	TagTitle       = "TITLE"
)

// Reader reads a single tag value from a FLAC file.
type Reader interface {
	ShowTag(ctx context.Context, path, tag string) (string, error)
}

// CLI shells out to metaflac.
type CLI struct {
	binary string
}

// NewCLI constructs a metaflac client. An empty binary selects "metaflac".
func NewCLI(binary string) *CLI {
	if strings.TrimSpace(binary) == "" {
		binary = "metaflac"
	}
	return &CLI{binary: binary}
}

// ShowTag runs `metaflac --show-tag=<tag> <path>` and returns the value of the
// first KEY=value line. A tag that is not set yields an empty string.
func (c *CLI) ShowTag(ctx context.Context, path, tag string) (string, error) {
	if path == "" || tag == "" {
		return "", errors.New("show tag: path and tag required")
	}
	cmd := commandContext(ctx, c.binary, "--show-tag="+tag, path) //nolint:gosec
	output, err := cmd.Output()
	if err != nil {
		detail := ""
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail = string(exitErr.Stderr)
		}
		return "", services.CommandError("rename", c.binary, detail, err)
	}
	return ParseTagOutput(string(output)), nil
}

// ParseTagOutput extracts the value from metaflac's KEY=value output. Only
// the first line is considered; surrounding whitespace is trimmed.
func ParseTagOutput(output string) string {
	line, _, _ := strings.Cut(output, "\n")
	_, value, found := strings.Cut(line, "=")
	if !found {
		return ""
	}
	return strings.Trim(value, "\r\n\t ")
}
