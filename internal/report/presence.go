package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"quorum/internal/attendance"
)

// NameHeader labels the member column.
const NameHeader = "Elu"

// CellValues are the strings written for present and absent cells.
type CellValues struct {
	Present string
	Absent  string
}

// DefaultCellValues writes 1 for present and 0 for absent.
var DefaultCellValues = CellValues{Present: "1", Absent: "0"}

func (c CellValues) cell(present bool) string {
	if present {
		return c.Present
	}
	return c.Absent
}

func sessionHeaders(m *attendance.Matrix) []string {
	headers := make([]string, 0, len(m.Sessions)+1)
	headers = append(headers, NameHeader)
	for _, s := range m.Sessions {
		headers = append(headers, s.Header())
	}
	return headers
}

// WriteAttendanceCSV writes the matrix as CSV: a header row of session labels
// and one ranked row per member.
func WriteAttendanceCSV(w io.Writer, m *attendance.Matrix, cells CellValues) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sessionHeaders(m)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(m.Sessions)+1)
	for _, row := range m.Rows {
		record[0] = string(row.Key)
		for i, present := range row.Cells {
			record[i+1] = cells.cell(present)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", row.Key, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// RenderAttendanceMarkdown renders the matrix as a Markdown table with the
// present count and rate appended to each row.
func RenderAttendanceMarkdown(m *attendance.Matrix, cells CellValues) string {
	headers := sessionHeaders(m)
	tw := table.NewWriter()

	header := make(table.Row, 0, len(headers)+2)
	for _, h := range headers {
		header = append(header, h)
	}
	header = append(header, "Présences", "%")
	tw.AppendHeader(header)

	for _, row := range m.Rows {
		r := make(table.Row, 0, len(row.Cells)+3)
		r = append(r, string(row.Key))
		for _, present := range row.Cells {
			r = append(r, cells.cell(present))
		}
		r = append(r, strconv.Itoa(row.Present), strconv.FormatFloat(row.Percentage, 'f', 1, 64))
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(header))
	for i := 2; i <= len(header); i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignCenter})
	}
	configs[len(configs)-1].Align = text.AlignRight
	configs[len(configs)-2].Align = text.AlignRight
	tw.SetColumnConfigs(configs)

	return tw.RenderMarkdown() + "\n"
}

// FormatRecap lists members by rank, one line each:
//
//	DUPONT                          88 / 93 ( 94.6%)
func FormatRecap(m *attendance.Matrix) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Recap présence (%d séances) ---\n", len(m.Sessions))
	for _, s := range m.Summaries() {
		fmt.Fprintf(&b, "%-30s %3d / %d (%5.1f%%)\n", s.Key, s.Present, s.Total, s.Percentage)
	}
	return b.String()
}
