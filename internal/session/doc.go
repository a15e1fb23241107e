// Package session loads archived council session documents into the typed
// model the rest of quorum works on.
//
// A session directory holds one JSON or YAML document per council meeting.
// The loader is the only place that knows the on-disk schema: it tolerates
// loose values inside name lists, converts attendance markers and vote
// details into Attendee and Vote records, and rejects documents without a
// usable date or presence block. Rejected documents are reported as
// MalformedSessionError values and skipped; a missing input directory is
// fatal and reported as InputNotFoundError.
//
// Sessions come back sorted by date (ties broken by document path) and are
// never merged, even when two documents share a date.
package session
