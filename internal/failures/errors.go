package failures

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrGrammar         = errors.New("filename grammar rejection")
	ErrNoAcceptedFiles = errors.New("no files passed the filename grammar")
	ErrOutputConflict  = errors.New("catalog already exists")
	ErrConfiguration   = errors.New("configuration error")
	ErrIO              = errors.New("filesystem error")
	ErrLocked          = errors.New("output locked by another run")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker. The marker should be one of the exported sentinel errors
// above; a nil marker defaults to ErrIO.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps a run error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrConfiguration):
		return 2
	default:
		return 1
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "run failure"
	}
	return strings.Join(parts, ": ")
}
