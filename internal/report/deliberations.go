package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"quorum/internal/deliberation"
	"quorum/internal/session"
)

// FormatDeliberations renders the conflictual deliberation report: every
// conflictual session, most recent first, with its non-unanimous
// deliberations, followed by the grand totals and the per-year breakdown.
func FormatDeliberations(summary *deliberation.Summary, years []deliberation.YearTally) string {
	var b strings.Builder
	for i := len(summary.Conflictual) - 1; i >= 0; i-- {
		detail := summary.Conflictual[i]
		fmt.Fprintf(&b, "# %s\n", detail.Session.Header())
		for _, item := range detail.Items {
			writeItem(&b, detail.Session, item)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Total Séances conflictuelles: %d, total délibérations conflictuelles %d, total délibérations: %d\n",
		summary.ConflictualSessions(), summary.ConflictualDeliberations, summary.Deliberations)
	b.WriteString(FormatYears(years))
	return b.String()
}

// FormatYears renders the per-year breakdown, one line per year.
func FormatYears(years []deliberation.YearTally) string {
	var b strings.Builder
	b.WriteString("Par année\n")
	for _, y := range years {
		fmt.Fprintf(&b, "%d: %d séances conflictuelles\n", y.Year, y.ConflictualSessions)
	}
	return b.String()
}

func writeItem(b *strings.Builder, s session.Session, item deliberation.Item) {
	d := item.Deliberation
	title := d.Title
	if title == "" {
		title = "(sans titre)"
	}
	if d.ID != "" {
		title = "[" + d.ID + "] " + title
	}
	fmt.Fprintf(b, "## %s (%s)\n", title, filepath.Base(s.Source))

	mode := d.Mode
	if mode == "" {
		mode = "-"
	}
	fmt.Fprintf(b, "%s, %s\n", mode, item.Outcome)

	forVotes, against, abstain := item.Counts()
	writeChoice(b, "contre", against, d.Voters(session.ChoiceAgainst))
	writeChoice(b, "pour", forVotes, d.Voters(session.ChoiceFor))
	writeChoice(b, "abstention", abstain, d.Voters(session.ChoiceAbstain))
}

func writeChoice(b *strings.Builder, label string, count int, names []string) {
	fmt.Fprintf(b, " - %s: %d", label, count)
	if len(names) > 0 {
		fmt.Fprintf(b, " (%s)", strings.Join(names, ", "))
	}
	b.WriteString("\n")
}
