package failures_test

import (
	"errors"
	"strings"
	"testing"

	"midicat/internal/failures"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("disk full")
	err := failures.Wrap(failures.ErrIO, "publish", "write", "catalog write failed", base)
	if !errors.Is(err, failures.ErrIO) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"publish", "write", "catalog write failed", "disk full"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutCauseOrDetail(t *testing.T) {
	err := failures.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, failures.ErrIO) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "run failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"config", failures.Wrap(failures.ErrConfiguration, "config", "load", "bad", nil), 2},
		{"no accepted", failures.Wrap(failures.ErrNoAcceptedFiles, "parse", "", "", nil), 1},
		{"plain", errors.New("boom"), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := failures.ExitCode(tc.err); got != tc.want {
				t.Fatalf("ExitCode = %d, want %d", got, tc.want)
			}
		})
	}
}
