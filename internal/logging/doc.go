// Package logging assembles structured slog loggers and formatting helpers used
// across midicat.
//
// It owns the console and JSON handlers, fans records out to a rotating log
// file when one is configured, and exposes context-aware helpers so pipeline
// code can tag log lines with the run identifier and stage. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
