package organizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"midicat/internal/failures"
	"midicat/internal/logging"
)

// Move records one relocated file.
type Move struct {
	Source string
	Target string
}

// Organizer relocates files into a single quarantine directory.
type Organizer struct {
	dir    string
	logger *slog.Logger
}

// New constructs an organizer that moves files into dir.
func New(dir string, logger *slog.Logger) *Organizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Organizer{
		dir:    dir,
		logger: logging.NewComponentLogger(logger, "organizer"),
	}
}

// Quarantine moves each path into the quarantine directory. It stops at the
// first failure and returns the moves completed so far.
func (o *Organizer) Quarantine(ctx context.Context, paths []string) ([]Move, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	logger := logging.WithContext(ctx, o.logger)
	if err := os.MkdirAll(o.dir, 0o755); err != nil {
		return nil, failures.Wrap(failures.ErrIO, "organize", "create quarantine directory", o.dir, err)
	}

	moves := make([]Move, 0, len(paths))
	for _, source := range paths {
		if err := ctx.Err(); err != nil {
			return moves, err
		}
		target, err := nextFreePath(o.dir, filepath.Base(source))
		if err != nil {
			return moves, failures.Wrap(failures.ErrIO, "organize", "allocate quarantine name", source, err)
		}
		if err := moveOrCopyFile(logger, source, target); err != nil {
			return moves, err
		}
		logger.Debug("file quarantined",
			logging.String("source", source),
			logging.String("target", target),
		)
		moves = append(moves, Move{Source: source, Target: target})
	}
	logger.Info("quarantine complete",
		logging.Int("moved", len(moves)),
		logging.String("dir", o.dir),
	)
	return moves, nil
}

// nextFreePath returns dir/name, or dir/<stem>-<n><ext> for the first n that
// is not taken.
func nextFreePath(dir, name string) (string, error) {
	const maxAttempts = 10000
	candidate := filepath.Join(dir, name)
	if _, err := os.Lstat(candidate); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		return "", err
	}
	ext := filepath.Ext(name)
	stem := name[:len(name)-len(ext)]
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s-%d%s", stem, attempt, ext))
		if _, err := os.Lstat(candidate); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return candidate, nil
			}
			return "", err
		}
	}
	return "", fmt.Errorf("exhausted quarantine filename slots in %s", dir)
}
