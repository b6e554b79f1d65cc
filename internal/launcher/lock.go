package launcher

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"

	"sublaunch/internal/logging"
)

// LockFileName is created beside the subtitle script when runs are serialized.
const LockFileName = ".sublaunch.lock"

// LockPathFor returns the run lock path for a script.
func LockPathFor(script string) string {
	return filepath.Join(filepath.Dir(script), LockFileName)
}

// acquireRunLock blocks until no other launcher holds the lock at path. The
// subtitle script writes fixed temporary files beside itself, so overlapping
// runs from one directory would clobber each other. A lock that cannot be
// taken at all is logged and the run proceeds unlocked.
func acquireRunLock(path string, out io.Writer, logger *slog.Logger) func() {
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		logger.Warn("run lock unavailable; continuing without it", logging.String("lock", path), logging.Error(err))
		return func() {}
	}
	if !ok {
		fmt.Fprintln(out, "Another subtitle run is in progress; waiting for it to finish...")
		logger.Info("waiting for run lock", logging.String("lock", path))
		if err := lock.Lock(); err != nil {
			logger.Warn("run lock wait failed; continuing without it", logging.String("lock", path), logging.Error(err))
			return func() {}
		}
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release run lock", logging.String("lock", path), logging.Error(err))
		}
	}
}
