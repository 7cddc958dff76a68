package filename

import (
	"errors"
	"fmt"

	"midicat/internal/failures"
)

// Reason classifies a grammar rejection.
type Reason string

const (
	ReasonExtension         Reason = "unsupported_extension"
	ReasonSegmentCount      Reason = "segment_count"
	ReasonDifficulty        Reason = "invalid_difficulty"
	ReasonEmptyField        Reason = "empty_field"
	ReasonEmptyAfterCleanup Reason = "empty_after_normalize"
	ReasonEncoding          Reason = "invalid_encoding"
)

// RejectionError reports why a file name does not follow the grammar.
type RejectionError struct {
	Filename string
	Reason   Reason
	Detail   string
}

func (e *RejectionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Filename, e.Reason)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Filename, e.Reason, e.Detail)
}

// Is lets errors.Is match rejections against failures.ErrGrammar.
func (e *RejectionError) Is(target error) bool {
	return target == failures.ErrGrammar
}

// Rejection is the report form of a rejected file.
type Rejection struct {
	Filename string
	Reason   Reason
	Detail   string
}

// AsRejection converts a parse error into its report form. Errors that are not
// grammar rejections are reported with an empty reason and their message.
func AsRejection(name string, err error) Rejection {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return Rejection{Filename: rej.Filename, Reason: rej.Reason, Detail: rej.Detail}
	}
	return Rejection{Filename: name, Detail: err.Error()}
}

func reject(name string, reason Reason, format string, args ...any) *RejectionError {
	return &RejectionError{Filename: name, Reason: reason, Detail: fmt.Sprintf(format, args...)}
}
