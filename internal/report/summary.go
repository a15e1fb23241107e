package report

import (
	"encoding/json"
	"fmt"
	"io"

	"quorum/internal/attendance"
	"quorum/internal/deliberation"
	"quorum/internal/members"
	"quorum/internal/session"
)

// Data is everything a run produces that reports can render.
type Data struct {
	Matrix        *attendance.Matrix
	Deliberations *deliberation.Summary
	Years         []deliberation.YearTally
	Registry      *members.Registry
	Skipped       []*session.MalformedSessionError
}

// Summary is the machine-readable digest of a run.
type Summary struct {
	Sessions            int                      `json:"sessions"`
	Members             int                      `json:"members"`
	Skipped             []SkippedDocument        `json:"skipped"`
	Presence            []MemberPresence         `json:"presence"`
	Deliberations       DeliberationTotals       `json:"deliberations"`
	Years               []deliberation.YearTally `json:"years"`
	SuspectedDuplicates []DuplicatePair          `json:"suspected_duplicates"`
}

// SkippedDocument is a session document left out of the run.
type SkippedDocument struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// MemberPresence is one member's attendance recap.
type MemberPresence struct {
	Key        string   `json:"key"`
	Variants   []string `json:"variants,omitempty"`
	Present    int      `json:"present"`
	Total      int      `json:"total"`
	Percentage float64  `json:"percentage"`
}

// DeliberationTotals are the run-wide classification counts.
type DeliberationTotals struct {
	Total               int `json:"total"`
	Conflictual         int `json:"conflictual"`
	ConflictualSessions int `json:"conflictual_sessions"`
	Dissent             int `json:"dissent"`
	AbstentionOnly      int `json:"abstention_only"`
}

// DuplicatePair names two member keys that may denote the same person.
type DuplicatePair struct {
	Short string `json:"short"`
	Long  string `json:"long"`
}

// BuildSummary digests d. Slices are never nil so the JSON shape is stable.
func BuildSummary(d Data) Summary {
	s := Summary{
		Skipped:             []SkippedDocument{},
		Presence:            []MemberPresence{},
		Years:               []deliberation.YearTally{},
		SuspectedDuplicates: []DuplicatePair{},
	}
	if d.Matrix != nil {
		s.Sessions = len(d.Matrix.Sessions)
		s.Members = len(d.Matrix.Rows)
		for _, row := range d.Matrix.Summaries() {
			mp := MemberPresence{
				Key:        string(row.Key),
				Present:    row.Present,
				Total:      row.Total,
				Percentage: row.Percentage,
			}
			if d.Registry != nil {
				mp.Variants = d.Registry.Variants(row.Key)
			}
			s.Presence = append(s.Presence, mp)
		}
	}
	for _, bad := range d.Skipped {
		s.Skipped = append(s.Skipped, SkippedDocument{Path: bad.Path, Reason: bad.Reason})
	}
	if d.Deliberations != nil {
		s.Deliberations = DeliberationTotals{
			Total:               d.Deliberations.Deliberations,
			Conflictual:         d.Deliberations.ConflictualDeliberations,
			ConflictualSessions: d.Deliberations.ConflictualSessions(),
			Dissent:             d.Deliberations.Dissent,
			AbstentionOnly:      d.Deliberations.AbstentionOnly,
		}
	}
	s.Years = append(s.Years, d.Years...)
	if d.Registry != nil {
		for _, pair := range d.Registry.SuspectedDuplicates() {
			s.SuspectedDuplicates = append(s.SuspectedDuplicates, DuplicatePair{Short: string(pair.Short), Long: string(pair.Long)})
		}
	}
	return s
}

// WriteSummaryJSON writes the indented JSON digest of d.
func WriteSummaryJSON(w io.Writer, d Data) error {
	encoded, err := json.MarshalIndent(BuildSummary(d), "", "  ")
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	encoded = append(encoded, '\n')
	_, err = w.Write(encoded)
	return err
}
