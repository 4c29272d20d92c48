package preflight

import (
	"fmt"
	"strings"

	"cuesplit/internal/config"
	"cuesplit/internal/deps"
	"cuesplit/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CoreRequirements lists the programs every run needs. cuetag ships in the
// same package as cuebreakpoints and is covered by that check.
func CoreRequirements(cfg *config.Config) []deps.Requirement {
	tools := toolsFor(cfg)
	return []deps.Requirement{
		{
			Name:        "cuebreakpoints",
			Command:     tools.Cuebreakpoints,
			Package:     "cuetools",
			Description: "Reads split points from CUE sheets",
		},
		{
			Name:        "shnsplit",
			Command:     tools.Shnsplit,
			Package:     "shntool",
			Description: "Splits images at the CUE breakpoints",
		},
		{
			Name:        "metaflac",
			Command:     tools.Metaflac,
			Package:     "flac",
			Description: "Reads tags back for renaming",
		},
	}
}

// APERequirement is the Monkey's Audio decoder used by shnsplit for .ape images.
func APERequirement(cfg *config.Config) deps.Requirement {
	return deps.Requirement{
		Name:        "mac",
		Command:     toolsFor(cfg).Mac,
		Package:     "monkeys-audio",
		Description: "Decodes APE images",
	}
}

// WavPackRequirement is the decoder used to unpack .wv files before scanning.
func WavPackRequirement(cfg *config.Config) deps.Requirement {
	return deps.Requirement{
		Name:        "wvunpack",
		Command:     toolsFor(cfg).Wvunpack,
		Package:     "wavpack",
		Description: "Unpacks WavPack images and their embedded CUE sheets",
	}
}

// AllRequirements lists every program cuesplit may call. Format decoders are
// flagged optional since a run only needs them when that format is present.
func AllRequirements(cfg *config.Config) []deps.Requirement {
	requirements := CoreRequirements(cfg)
	requirements = append(requirements, deps.Requirement{
		Name:        "cuetag",
		Command:     toolsFor(cfg).Cuetag,
		Package:     "cuetools",
		Description: "Copies CUE metadata onto split tracks",
	})
	for _, req := range []deps.Requirement{APERequirement(cfg), WavPackRequirement(cfg)} {
		req.Optional = true
		requirements = append(requirements, req)
	}
	return requirements
}

// CheckTools resolves every requirement and returns all statuses. The error
// is non-nil, and marked services.ErrToolMissing, when any required tool is
// absent; its message names every missing tool with its package.
func CheckTools(requirements []deps.Requirement) ([]deps.Status, error) {
	statuses := deps.CheckBinaries(requirements)
	missing := deps.Missing(statuses)
	if len(missing) == 0 {
		return statuses, nil
	}
	details := make([]string, 0, len(missing))
	for _, status := range missing {
		details = append(details, status.Detail)
	}
	message := fmt.Sprintf("%d required tool(s) missing: %s", len(missing), strings.Join(details, "; "))
	return statuses, services.Wrap(services.ErrToolMissing, "preflight", "check tools", message, nil)
}

func toolsFor(cfg *config.Config) config.Tools {
	if cfg == nil {
		defaults := config.Default()
		return defaults.Tools
	}
	return cfg.Tools
}
