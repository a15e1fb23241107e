// Package members resolves raw member names found in session documents to
// canonical member keys.
//
// The Registry is an explicit, append-only table: the pipeline registers every
// name it sees while walking sessions in date order, then closes the registry
// before the attendance matrix is built. Canonicalization never fails; names
// the rules cannot merge simply produce their own key and show up as a
// separate row, and SuspectedDuplicates points at likely leftovers.
package members
