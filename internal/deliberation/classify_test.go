package deliberation_test

import (
	"testing"

	"quorum/internal/deliberation"
	"quorum/internal/session"
)

func bloc(choice session.Choice, n int) session.Vote {
	return session.Vote{Choice: choice, Count: n}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		delib session.Deliberation
		want  deliberation.Outcome
	}{
		{"all for", session.Deliberation{Votes: []session.Vote{bloc(session.ChoiceFor, 5)}}, deliberation.Unanimous},
		{"one against", session.Deliberation{Votes: []session.Vote{
			bloc(session.ChoiceFor, 4), bloc(session.ChoiceAgainst, 1),
		}}, deliberation.NonUnanimousDissent},
		{"one abstention", session.Deliberation{Votes: []session.Vote{
			bloc(session.ChoiceFor, 4), bloc(session.ChoiceAbstain, 1),
		}}, deliberation.NonUnanimousAbstentionOnly},
		{"not participating ignored", session.Deliberation{Votes: []session.Vote{
			bloc(session.ChoiceFor, 5), bloc(session.ChoiceNotParticipating, 2),
		}}, deliberation.Unanimous},
		{"no votes", session.Deliberation{}, deliberation.Unanimous},
		{"zero counters ignored", session.Deliberation{Votes: []session.Vote{
			bloc(session.ChoiceFor, 19), bloc(session.ChoiceAgainst, 0), bloc(session.ChoiceAbstain, 0),
		}}, deliberation.Unanimous},
		{"against and abstain", session.Deliberation{Votes: []session.Vote{
			bloc(session.ChoiceFor, 10),
			{Voter: "Paul DURAND", Choice: session.ChoiceAgainst, Count: 1},
			{Voter: "Luc PETIT", Choice: session.ChoiceAbstain, Count: 1},
		}}, deliberation.NonUnanimousDissent},
		{"only against", session.Deliberation{Votes: []session.Vote{bloc(session.ChoiceAgainst, 3)}}, deliberation.NonUnanimousDissent},
		{"marker wins", session.Deliberation{Mode: "UNANIMITE", AdoptedUnanimously: true, Votes: []session.Vote{
			bloc(session.ChoiceFor, 18), bloc(session.ChoiceAbstain, 1),
		}}, deliberation.Unanimous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deliberation.Classify(tt.delib)
			if got != tt.want {
				t.Fatalf("Classify = %s, want %s", got, tt.want)
			}
			if again := deliberation.Classify(tt.delib); again != got {
				t.Fatalf("Classify not deterministic: %s then %s", got, again)
			}
		})
	}
}

func TestIsConflictual(t *testing.T) {
	calm := session.Session{Deliberations: []session.Deliberation{
		{Votes: []session.Vote{bloc(session.ChoiceFor, 19)}},
		{},
	}}
	if deliberation.IsConflictual(calm) {
		t.Fatal("session with only unanimous deliberations is not conflictual")
	}
	stormy := calm
	stormy.Deliberations = append(append([]session.Deliberation(nil), calm.Deliberations...),
		session.Deliberation{Votes: []session.Vote{bloc(session.ChoiceFor, 15), bloc(session.ChoiceAbstain, 4)}})
	if !deliberation.IsConflictual(stormy) {
		t.Fatal("one abstention makes the session conflictual")
	}
	if deliberation.IsConflictual(session.Session{}) {
		t.Fatal("session without deliberations is not conflictual")
	}
}

func TestOutcomeString(t *testing.T) {
	if deliberation.NonUnanimousAbstentionOnly.String() != "non-unanimous-with-abstention-only" {
		t.Fatalf("unexpected label %q", deliberation.NonUnanimousAbstentionOnly)
	}
	if deliberation.Outcome(42).String() != "unknown" {
		t.Fatal("out of range outcome should be unknown")
	}
}
