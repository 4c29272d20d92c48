package scan

import (
	"context"
	"errors"
	"log/slog"

	"cuesplit/internal/logging"
	"cuesplit/internal/services"
)

// Unpacker decodes a single WavPack file next to itself.
type Unpacker interface {
	Unpack(ctx context.Context, path string) error
}

// UnpackResult records the outcome for one .wv file.
type UnpackResult struct {
	Source string
	Err    error
}

// Unpack decodes every .wv file in dir. Individual failures are logged and
// recorded, and the remaining files are still processed. A missing decoder
// or a cancelled context stops the loop and is returned as the error.
func Unpack(ctx context.Context, dir string, unpacker Unpacker, opts Options, logger *slog.Logger) ([]UnpackResult, error) {
	logger = logging.NewComponentLogger(logger, "scan")
	sources, err := WavPackFiles(dir, opts)
	if err != nil {
		return nil, err
	}

	results := make([]UnpackResult, 0, len(sources))
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		err := unpacker.Unpack(services.WithImage(ctx, source), source)
		if err != nil && errors.Is(err, services.ErrToolMissing) {
			return results, err
		}
		if err != nil {
			logging.WarnWithContext(logger, "wavpack unpack failed", "unpack_failed",
				logging.String(logging.FieldImage, source),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the .wv file with wvunpack -v"),
				logging.String(logging.FieldImpact, "file skipped, run continues"),
			)
		} else {
			logger.Info("wavpack unpacked", logging.String(logging.FieldImage, source))
		}
		results = append(results, UnpackResult{Source: source, Err: err})
	}
	return results, nil
}
