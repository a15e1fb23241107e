// Package config loads, normalizes, and validates quorum configuration data.
//
// It supplies defaults, reads TOML files strictly (unknown keys are errors),
// expands "~" in paths and falls back to QUORUM_INPUT_DIR and
// QUORUM_OUTPUT_DIR when the file leaves the directories empty. The Config type centralizes the knobs the CLI and the
// analysis pipeline need: where session documents live, how member names are
// merged, how presence is counted, and which artifacts get written.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical member keys, and clear validation errors.
package config
