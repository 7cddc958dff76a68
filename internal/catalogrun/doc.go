// Package catalogrun drives one catalog run from directory scan to published
// JSON.
//
// A run moves through fixed stages (scan, parse, dedup, build, publish and the
// optional organize) and returns a Result holding every per-file outcome. Run
// ids and stage names ride on the context so log lines from every stage can be
// correlated. When a history store is supplied, each run's summary is recorded
// whatever its outcome.
package catalogrun
