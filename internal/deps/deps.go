package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external program cuesplit relies on.
type Requirement struct {
	Name        string
	Command     string
	Package     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Package     string
	Description string
	Optional    bool
	Available   bool
	Path        string
	Detail      string
}

// Check resolves a single requirement. Only the absence of the executable
// counts as a failure; the program is never run.
func Check(req Requirement) Status {
	cmd := strings.TrimSpace(req.Command)
	status := Status{
		Name:        req.Name,
		Command:     cmd,
		Package:     strings.TrimSpace(req.Package),
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	if cmd == "" {
		status.Detail = "command not configured"
		return status
	}
	resolved, err := exec.LookPath(cmd)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", cmd)
		if status.Package != "" {
			status.Detail = fmt.Sprintf("binary %q not found; install the %q package", cmd, status.Package)
		}
		return status
	}
	status.Available = true
	status.Path = resolved
	return status
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, Check(req))
	}
	return results
}

// Missing returns the required (non-optional) statuses that are unavailable.
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}
