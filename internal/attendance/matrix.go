package attendance

import (
	"fmt"
	"math"
	"sort"

	"quorum/internal/members"
	"quorum/internal/session"
)

// Options tunes presence determination.
type Options struct {
	// CountProxyGivers counts members who delegated their vote as present.
	CountProxyGivers bool
}

// Summary is the attendance recap for one member.
type Summary struct {
	Key        members.MemberKey
	Present    int
	Total      int
	Percentage float64
}

func (s Summary) String() string {
	return fmt.Sprintf("%s %d / %d (%.1f%%)", s.Key, s.Present, s.Total, s.Percentage)
}

// Row is one member's presence flags, one per session, in session order.
type Row struct {
	Summary
	Cells []bool
}

// Matrix is the full presence table.
type Matrix struct {
	// Sessions are the columns, in chronological order.
	Sessions []session.Session
	// Rows are ranked by Less.
	Rows  []Row
	index map[members.MemberKey]int
}

// Enroll registers every name mentioned in the sessions' presence blocks,
// walking sessions and attendees in order.
func Enroll(registry *members.Registry, sessions []session.Session) error {
	for _, s := range sessions {
		for _, name := range s.Names() {
			if _, err := registry.Register(name); err != nil {
				return fmt.Errorf("enroll %s from %s: %w", name, s.Source, err)
			}
		}
	}
	return nil
}

// Build assembles the presence matrix. Sessions must already be in date
// order. The result has exactly registry.Len() rows and len(sessions) cells
// per row; attendees whose key is not registered are ignored.
func Build(sessions []session.Session, registry *members.Registry, opts Options) *Matrix {
	keys := registry.Keys()
	rows := make([]Row, len(keys))
	rowOf := make(map[members.MemberKey]int, len(keys))
	for i, key := range keys {
		rows[i] = Row{Summary: Summary{Key: key, Total: len(sessions)}, Cells: make([]bool, len(sessions))}
		rowOf[key] = i
	}

	for col, s := range sessions {
		for _, a := range s.Attendees {
			if !a.Present(opts.CountProxyGivers) {
				continue
			}
			i, ok := rowOf[registry.Canonicalize(a.Name)]
			if !ok || rows[i].Cells[col] {
				continue
			}
			rows[i].Cells[col] = true
			rows[i].Present++
		}
	}

	for i := range rows {
		rows[i].Percentage = Percentage(rows[i].Present, rows[i].Total)
	}
	Rank(rows)

	m := &Matrix{
		Sessions: append([]session.Session(nil), sessions...),
		Rows:     rows,
		index:    make(map[members.MemberKey]int, len(rows)),
	}
	for i, row := range rows {
		m.index[row.Key] = i
	}
	return m
}

// Percentage returns 100*present/total rounded to one decimal, or 0 when
// there are no sessions. Exact halves round to even, so 1/16 gives 6.2 like
// the %.1f recap does.
func Percentage(present, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.RoundToEven(float64(present)*1000/float64(total)) / 10
}

// Less orders summaries by percentage descending, then present count
// descending, then key ascending.
func Less(a, b Summary) bool {
	if a.Percentage != b.Percentage {
		return a.Percentage > b.Percentage
	}
	if a.Present != b.Present {
		return a.Present > b.Present
	}
	return a.Key < b.Key
}

// Rank sorts rows in place by Less.
func Rank(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool { return Less(rows[i].Summary, rows[j].Summary) })
}

// Row returns the row for key.
func (m *Matrix) Row(key members.MemberKey) (Row, bool) {
	i, ok := m.index[key]
	if !ok {
		return Row{}, false
	}
	return m.Rows[i], true
}

// Present reports the cell for key at column col. Unknown members and
// out-of-range columns are absent.
func (m *Matrix) Present(key members.MemberKey, col int) bool {
	row, ok := m.Row(key)
	if !ok || col < 0 || col >= len(row.Cells) {
		return false
	}
	return row.Cells[col]
}

// ColumnCount returns how many members were present at session col.
func (m *Matrix) ColumnCount(col int) int {
	n := 0
	for _, row := range m.Rows {
		if col >= 0 && col < len(row.Cells) && row.Cells[col] {
			n++
		}
	}
	return n
}

// Summaries returns the ranked per-member recap.
func (m *Matrix) Summaries() []Summary {
	out := make([]Summary, len(m.Rows))
	for i, row := range m.Rows {
		out[i] = row.Summary
	}
	return out
}

// Dimensions returns the row and column counts.
func (m *Matrix) Dimensions() (rows, cols int) {
	return len(m.Rows), len(m.Sessions)
}
