package organizer

import (
	"errors"
	"log/slog"
	"os"
	"syscall"

	"midicat/internal/failures"
	"midicat/internal/fileutil"
	"midicat/internal/logging"
)

// renameFile is swapped in tests to simulate cross-device moves.
var renameFile = os.Rename

func moveOrCopyFile(logger *slog.Logger, source, target string) error {
	renameErr := renameFile(source, target)
	if renameErr == nil {
		return nil
	}

	var linkErr *os.LinkError
	if errors.As(renameErr, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		if copyErr := fileutil.CopyFileVerified(source, target); copyErr != nil {
			return failures.Wrap(failures.ErrIO, "organize", "copy file", "Failed to copy file into quarantine", copyErr)
		}
		if err := os.Remove(source); err != nil {
			logger.Warn("failed to remove source file after copy; duplicate files remain",
				logging.Error(err),
				logging.String("source", source),
				logging.String(logging.FieldEventType, "quarantine_source_cleanup_failed"),
				logging.String(logging.FieldErrorHint, "manually delete the source file if needed"),
				logging.String(logging.FieldImpact, "file remains in the scanned directory and will be rejected again"),
			)
		}
		return nil
	}

	return failures.Wrap(failures.ErrIO, "organize", "move file", "Failed to move file into quarantine", renameErr)
}
