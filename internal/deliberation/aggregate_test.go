package deliberation_test

import (
	"reflect"
	"testing"
	"time"

	"quorum/internal/deliberation"
	"quorum/internal/session"
)

var (
	unanimousVote = session.Deliberation{Title: "Budget annexe", Votes: []session.Vote{bloc(session.ChoiceFor, 19)}}
	dissentVote   = session.Deliberation{Title: "Tarifs cantine", Mode: "MAJORITE", Votes: []session.Vote{
		bloc(session.ChoiceFor, 15),
		{Voter: "Paul DURAND", Choice: session.ChoiceAgainst, Count: 1},
		bloc(session.ChoiceAgainst, 2),
	}}
	abstainVote = session.Deliberation{Title: "Subventions", Mode: "MAJORITE", Votes: []session.Vote{
		bloc(session.ChoiceFor, 17), bloc(session.ChoiceAbstain, 2),
	}}
)

// councilTerm builds 93 sessions spread over 2014-2025 with a known number of
// conflictual sessions per year.
func councilTerm() []session.Session {
	plan := []struct {
		year, sessions, conflictual int
	}{
		{2014, 6, 2}, {2015, 8, 2}, {2016, 8, 4}, {2017, 8, 3},
		{2018, 8, 2}, {2019, 7, 0}, {2020, 9, 5}, {2021, 8, 3},
		{2022, 9, 5}, {2023, 7, 1}, {2024, 8, 1}, {2025, 7, 3},
	}
	var out []session.Session
	for _, p := range plan {
		for i := 0; i < p.sessions; i++ {
			s := session.Session{
				Date:          time.Date(p.year, time.Month(i+1), 10, 0, 0, 0, 0, time.UTC),
				Deliberations: []session.Deliberation{unanimousVote, unanimousVote},
			}
			if i < p.conflictual {
				s.Deliberations = append(s.Deliberations, dissentVote)
				if i%2 == 0 {
					s.Deliberations = append(s.Deliberations, abstainVote)
				}
			}
			out = append(out, s)
		}
	}
	return out
}

func TestAggregateCouncilTerm(t *testing.T) {
	sessions := councilTerm()
	if len(sessions) != 93 {
		t.Fatalf("fixture has %d sessions, want 93", len(sessions))
	}

	years := deliberation.Aggregate(sessions)
	got := make(map[int]int, len(years))
	var order []int
	for _, y := range years {
		got[y.Year] = y.ConflictualSessions
		order = append(order, y.Year)
	}
	want := map[int]int{
		2025: 3, 2024: 1, 2023: 1, 2022: 5, 2021: 3, 2020: 5,
		2018: 2, 2017: 3, 2016: 4, 2015: 2, 2014: 2,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("per-year counts = %v, want %v", got, want)
	}
	wantOrder := []int{2014, 2015, 2016, 2017, 2018, 2020, 2021, 2022, 2023, 2024, 2025}
	if !reflect.DeepEqual(order, wantOrder) {
		t.Fatalf("years = %v, want ascending without 2019", order)
	}
	if total := deliberation.TotalConflictual(years); total != 31 {
		t.Fatalf("total conflictual = %d, want 31", total)
	}

	summary := deliberation.Summarize(sessions)
	if summary.ConflictualSessions() != deliberation.TotalConflictual(years) {
		t.Fatalf("summary counts %d conflictual sessions, years sum to %d",
			summary.ConflictualSessions(), deliberation.TotalConflictual(years))
	}
	if summary.Sessions != 93 {
		t.Fatalf("sessions = %d", summary.Sessions)
	}
	if summary.Dissent != 31 || summary.ConflictualDeliberations != summary.Dissent+summary.AbstentionOnly {
		t.Fatalf("unexpected deliberation counts: %+v", summary)
	}
}

func TestAggregateYearBreakdown(t *testing.T) {
	sessions := []session.Session{
		{Date: time.Date(2020, 7, 3, 0, 0, 0, 0, time.UTC), Deliberations: []session.Deliberation{dissentVote, abstainVote}},
		{Date: time.Date(2020, 7, 3, 0, 0, 0, 0, time.UTC), Deliberations: []session.Deliberation{abstainVote}},
		{Date: time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC), Deliberations: []session.Deliberation{unanimousVote}},
	}
	want := []deliberation.YearTally{{
		Year:                      2020,
		ConflictualSessions:       2,
		NonUnanimousDeliberations: 3,
		Dissent:                   1,
		AbstentionOnly:            2,
	}}
	if got := deliberation.Aggregate(sessions); !reflect.DeepEqual(got, want) {
		t.Fatalf("Aggregate = %+v, want %+v", got, want)
	}
	if got := deliberation.Aggregate(nil); len(got) != 0 {
		t.Fatalf("no sessions should give no years, got %+v", got)
	}
}

func TestSummarizeKeepsOnlyNonUnanimousItems(t *testing.T) {
	sessions := []session.Session{
		{Date: time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), Deliberations: []session.Deliberation{unanimousVote, dissentVote}},
		{Date: time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC), Deliberations: []session.Deliberation{unanimousVote}},
	}
	summary := deliberation.Summarize(sessions)
	if summary.Deliberations != 3 || summary.ConflictualDeliberations != 1 {
		t.Fatalf("unexpected totals: %+v", summary)
	}
	if len(summary.Conflictual) != 1 || len(summary.Conflictual[0].Items) != 1 {
		t.Fatalf("conflictual detail = %+v", summary.Conflictual)
	}
	item := summary.Conflictual[0].Items[0]
	if item.Outcome != deliberation.NonUnanimousDissent {
		t.Fatalf("outcome = %s", item.Outcome)
	}
	forVotes, against, abstain := item.Counts()
	if forVotes != 15 || against != 3 || abstain != 0 {
		t.Fatalf("counts = %d/%d/%d", forVotes, against, abstain)
	}
}
