// Package organizer moves files the catalog left out into a quarantine
// directory.
//
// Moves never overwrite: a name already present in the quarantine directory
// gets a numbered suffix. Cross-device moves fall back to a verified copy
// followed by removal of the source.
package organizer
