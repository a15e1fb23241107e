// Package deliberation classifies votes and rolls conflictual sessions up
// per year.
//
// A deliberation is unanimous when no participating voter chose anything
// but "for", or when the document records it as adopted unanimously. A
// session is conflictual when at least one of its deliberations is not.
package deliberation
