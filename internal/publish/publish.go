package publish

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"midicat/internal/catalog"
	"midicat/internal/failures"
	"midicat/internal/fileutil"
	"midicat/internal/logging"
)

// BackupTimeLayout stamps backup file names.
const BackupTimeLayout = "20060102-150405"

// ErrDeclined reports that the overwrite confirmation was answered no.
var ErrDeclined = errors.New("overwrite declined")

// Confirmer answers the overwrite question for an existing output.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) (bool, error) { return f(prompt) }

// Always answers every prompt with the same value.
type Always bool

// Confirm returns the fixed answer.
func (a Always) Confirm(string) (bool, error) { return bool(a), nil }

// Options configures a Write.
type Options struct {
	Confirmer Confirmer
	Now       func() time.Time
	Logger    *slog.Logger
}

// Result describes a completed write.
type Result struct {
	Path       string
	BackupPath string
	Replaced   bool
	PriorCount int
}

// Write stores data at path. It fails with failures.ErrLocked when another run
// holds the output lock and returns ErrDeclined when an existing output must
// not be replaced.
func Write(ctx context.Context, path string, data []byte, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	result := Result{Path: path, PriorCount: -1}

	lockPath := path + ".lock"
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return result, failures.Wrap(failures.ErrIO, "publish", "acquire lock", lockPath, err)
	}
	if !ok {
		return result, failures.Wrap(failures.ErrLocked, "publish", "acquire lock", "another run is writing "+path, nil)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release output lock",
				logging.Error(err),
				logging.String("lock", lockPath),
				logging.String(logging.FieldEventType, "output_lock_release_failed"),
				logging.String(logging.FieldImpact, "a stale lock file may remain until the process exits"),
			)
		}
	}()

	if err := ctx.Err(); err != nil {
		return result, err
	}

	info, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if info.IsDir() {
			return result, failures.Wrap(failures.ErrOutputConflict, "publish", "check output", path+" is a directory", nil)
		}
		result.PriorCount = priorFileCount(path)
		if opts.Confirmer == nil {
			return result, ErrDeclined
		}
		yes, err := opts.Confirmer.Confirm(overwritePrompt(path, result.PriorCount))
		if err != nil {
			return result, failures.Wrap(failures.ErrOutputConflict, "publish", "confirm overwrite", "", err)
		}
		if !yes {
			logger.Info("overwrite declined", logging.String("output", path))
			return result, ErrDeclined
		}
		backup, err := backupPath(path, now())
		if err != nil {
			return result, failures.Wrap(failures.ErrIO, "publish", "allocate backup", "", err)
		}
		if err := fileutil.CopyFileMode(path, backup, info.Mode().Perm()); err != nil {
			return result, failures.Wrap(failures.ErrIO, "publish", "backup catalog", backup, err)
		}
		result.BackupPath = backup
		result.Replaced = true
		logger.Info("existing catalog backed up",
			logging.String("output", path),
			logging.String("backup", backup),
			logging.Int("prior_file_count", result.PriorCount),
		)
	case errors.Is(statErr, fs.ErrNotExist):
	default:
		return result, failures.Wrap(failures.ErrIO, "publish", "check output", path, statErr)
	}

	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return result, failures.Wrap(failures.ErrIO, "publish", "write catalog", path, err)
	}
	return result, nil
}

func overwritePrompt(path string, prior int) string {
	if prior >= 0 {
		return fmt.Sprintf("%s already exists (%d files). Overwrite?", path, prior)
	}
	return fmt.Sprintf("%s already exists. Overwrite?", path)
}

// priorFileCount returns the file count of the existing catalog, or -1 when
// it cannot be read as one.
func priorFileCount(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return -1
	}
	defer f.Close()
	doc, err := catalog.Decode(f)
	if err != nil {
		return -1
	}
	return doc.FileCount
}

// backupPath finds a free "<name>.<stamp>.bak" beside path, numbering the
// stamp when several backups land in the same second.
func backupPath(path string, at time.Time) (string, error) {
	const maxAttempts = 1000
	stamp := at.Format(BackupTimeLayout)
	base := strings.TrimSuffix(path, string(filepath.Separator))
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := fmt.Sprintf("%s.%s.bak", base, stamp)
		if attempt > 0 {
			candidate = fmt.Sprintf("%s.%s-%d.bak", base, stamp, attempt)
		}
		if _, err := os.Stat(candidate); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return candidate, nil
			}
			return "", err
		}
	}
	return "", fmt.Errorf("exhausted backup filename slots for %s", path)
}
