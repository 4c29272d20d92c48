package workflow

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"cuesplit/internal/services"
)

// LockFileName is created in the target directory for the duration of a run.
const LockFileName = ".cuesplit.lock"

// ErrLocked indicates another run holds the directory lock.
var ErrLocked = errors.New("directory is locked by another cuesplit run")

type dirLock struct {
	lock *flock.Flock
	path string
}

func acquireDirLock(dir string) (*dirLock, error) {
	path := filepath.Join(dir, LockFileName)
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrFilesystem, "lock", "acquire lock", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	return &dirLock{lock: lock, path: path}, nil
}

// release unlocks before removing the file so no other run can lock the
// old inode while this one still holds it.
func (l *dirLock) release() error {
	if l == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove lock file: %w", err)
	}
	return nil
}
