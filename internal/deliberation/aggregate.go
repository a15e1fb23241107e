package deliberation

import (
	"sort"

	"quorum/internal/session"
)

// Item is a classified deliberation.
type Item struct {
	Deliberation session.Deliberation
	Outcome      Outcome
}

// Counts returns the for, against and abstain totals of the vote.
func (i Item) Counts() (forVotes, against, abstain int) {
	tally := i.Deliberation.Tally()
	return tally[session.ChoiceFor], tally[session.ChoiceAgainst], tally[session.ChoiceAbstain]
}

// SessionDetail lists the non-unanimous deliberations of one conflictual
// session.
type SessionDetail struct {
	Session session.Session
	Items   []Item
}

// Summary is the classification of every deliberation in a run.
type Summary struct {
	Sessions                 int
	Deliberations            int
	ConflictualDeliberations int
	Dissent                  int
	AbstentionOnly           int
	// Conflictual holds one entry per conflictual session, in input order.
	Conflictual []SessionDetail
}

// ConflictualSessions returns the number of conflictual sessions.
func (s *Summary) ConflictualSessions() int { return len(s.Conflictual) }

// Summarize classifies every deliberation of sessions.
func Summarize(sessions []session.Session) *Summary {
	summary := &Summary{Sessions: len(sessions)}
	for _, s := range sessions {
		var items []Item
		for _, d := range s.Deliberations {
			summary.Deliberations++
			outcome := Classify(d)
			switch outcome {
			case Unanimous:
				continue
			case NonUnanimousDissent:
				summary.Dissent++
			case NonUnanimousAbstentionOnly:
				summary.AbstentionOnly++
			}
			items = append(items, Item{Deliberation: d, Outcome: outcome})
		}
		if len(items) == 0 {
			continue
		}
		summary.ConflictualDeliberations += len(items)
		summary.Conflictual = append(summary.Conflictual, SessionDetail{Session: s, Items: items})
	}
	return summary
}

// YearTally counts conflictual activity for one calendar year.
type YearTally struct {
	Year                      int `json:"year"`
	ConflictualSessions       int `json:"conflictual_sessions"`
	NonUnanimousDeliberations int `json:"non_unanimous_deliberations"`
	Dissent                   int `json:"dissent"`
	AbstentionOnly            int `json:"abstention_only"`
}

// Aggregate counts conflictual sessions per year, ascending. Years without a
// conflictual session are left out. Sessions sharing a date are counted
// separately.
func Aggregate(sessions []session.Session) []YearTally {
	byYear := make(map[int]*YearTally)
	for _, s := range sessions {
		var dissent, abstention int
		for _, d := range s.Deliberations {
			switch Classify(d) {
			case NonUnanimousDissent:
				dissent++
			case NonUnanimousAbstentionOnly:
				abstention++
			}
		}
		if dissent+abstention == 0 {
			continue
		}
		tally, ok := byYear[s.Year()]
		if !ok {
			tally = &YearTally{Year: s.Year()}
			byYear[s.Year()] = tally
		}
		tally.ConflictualSessions++
		tally.NonUnanimousDeliberations += dissent + abstention
		tally.Dissent += dissent
		tally.AbstentionOnly += abstention
	}

	out := make([]YearTally, 0, len(byYear))
	for _, tally := range byYear {
		out = append(out, *tally)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// TotalConflictual sums ConflictualSessions across years.
func TotalConflictual(years []YearTally) int {
	total := 0
	for _, y := range years {
		total += y.ConflictualSessions
	}
	return total
}
