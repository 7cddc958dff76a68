// Package failures defines the sentinel markers used to classify run errors.
//
// Stages wrap underlying errors with Wrap so messages carry the stage and
// operation that failed while errors.Is still matches the marker. The CLI maps
// markers to operator-facing outcomes (benign skip, cancellation, or failure).
package failures
