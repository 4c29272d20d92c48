package wavpack

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"cuesplit/internal/services"
)

var commandContext = exec.CommandContext

// unpackArgs extracts the embedded cuesheet to <name>.cue (-cc) and deletes
// the .wv source after a successful unpack (-d).
var unpackArgs = []string{"-cc", "-d"}

// CLI shells out to wvunpack.
type CLI struct {
	binary string
}

// NewCLI constructs a wvunpack client. An empty binary selects "wvunpack".
func NewCLI(binary string) *CLI {
	if strings.TrimSpace(binary) == "" {
		binary = "wvunpack"
	}
	return &CLI{binary: binary}
}

// Unpack decodes path next to itself.
func (c *CLI) Unpack(ctx context.Context, path string) error {
	if path == "" {
		return errors.New("unpack: path required")
	}
	args := append(append([]string{}, unpackArgs...), path)
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return services.CommandError("unpack", c.binary, string(output), err)
	}
	return nil
}
