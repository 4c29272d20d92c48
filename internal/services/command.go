package services

import (
	"errors"
	"io/fs"
	"os/exec"
	"strconv"
	"strings"
)

// CommandNotFound reports whether err means the executable could not be located.
func CommandNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

// CommandError classifies a failed external command. A binary that could not
// be started because it is missing is ErrToolMissing; anything else is
// ErrProcessFailed. The last line of output is kept as the message.
func CommandError(stage, binary, output string, err error) error {
	if CommandNotFound(err) {
		return Wrap(ErrToolMissing, stage, binary, "executable not found", err)
	}
	return Wrap(ErrProcessFailed, stage, binary, LastLine(output), err)
}

// LastLine returns the last non-empty line of tool output, quoted.
func LastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return strconv.Quote(line)
		}
	}
	return ""
}
