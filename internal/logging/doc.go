// Package logging assembles structured slog loggers and formatting helpers used
// across quorum.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so the loader and the analysis
// pipeline automatically tag log lines with the run ID and the session
// document being processed. The package also provides a no-op logger for tests
// and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
