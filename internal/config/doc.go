// Package config loads, normalizes, and validates midicat configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MIDICAT_LOG_LEVEL. A .env file in the working directory is read before the
// fallbacks are applied so per-project overrides need no shell setup.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
