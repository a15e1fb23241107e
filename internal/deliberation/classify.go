package deliberation

import "quorum/internal/session"

// Outcome is the classification of one deliberation.
type Outcome int

const (
	Unanimous Outcome = iota
	NonUnanimousDissent
	NonUnanimousAbstentionOnly
)

func (o Outcome) String() string {
	switch o {
	case Unanimous:
		return "unanimous"
	case NonUnanimousDissent:
		return "non-unanimous-with-dissent"
	case NonUnanimousAbstentionOnly:
		return "non-unanimous-with-abstention-only"
	default:
		return "unknown"
	}
}

// Conflictual reports whether the outcome is anything but unanimous.
func (o Outcome) Conflictual() bool { return o != Unanimous }

// Classify returns the outcome of d. It never fails: a deliberation without
// any vote record is unanimous.
func Classify(d session.Deliberation) Outcome {
	if d.AdoptedUnanimously {
		return Unanimous
	}
	var against, abstain bool
	for _, v := range d.Votes {
		if v.Count <= 0 || !v.Choice.Participating() {
			continue
		}
		switch v.Choice {
		case session.ChoiceAgainst:
			against = true
		case session.ChoiceAbstain:
			abstain = true
		}
	}
	switch {
	case against:
		return NonUnanimousDissent
	case abstain:
		return NonUnanimousAbstentionOnly
	default:
		return Unanimous
	}
}

// IsConflictual reports whether s holds at least one non-unanimous
// deliberation.
func IsConflictual(s session.Session) bool {
	for _, d := range s.Deliberations {
		if Classify(d).Conflictual() {
			return true
		}
	}
	return false
}
