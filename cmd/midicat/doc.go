// Package main hosts the midicat CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration once, builds the
// structured logger, and hands directory scans to the catalogrun pipeline.
// Console logs go to stderr; stdout carries summaries and, for dry runs, the
// catalog JSON itself.
package main
