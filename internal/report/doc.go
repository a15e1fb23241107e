// Package report renders analysis results: the presence matrix as CSV and
// Markdown, the presence recap, the conflictual deliberation detail, and a
// JSON summary.
//
// Formatting functions are pure and write to an io.Writer or return a
// string. Writer persists every enabled artifact into the output directory,
// one atomic file at a time, while holding an exclusive lock on that
// directory.
package report
