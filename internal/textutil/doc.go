// Package textutil provides text normalization helpers shared by the member
// registry and the report writers.
//
// The primary use cases are:
//   - Folding names to an accent-free, uppercase, single-spaced form
//   - Sanitizing filenames for artifacts derived from configuration values
package textutil
