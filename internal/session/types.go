package session

import (
	"strings"
	"time"
)

// Marker is the attendance status recorded for a name in a session document.
type Marker int

const (
	MarkerPresent Marker = iota
	MarkerExcused
	MarkerAbsent
	// MarkerProxyGiver is an excused member who handed their vote to another member.
	MarkerProxyGiver
	// MarkerProxyHolder is the member carrying another member's vote.
	MarkerProxyHolder
)

func (m Marker) String() string {
	switch m {
	case MarkerPresent:
		return "present"
	case MarkerExcused:
		return "excused"
	case MarkerAbsent:
		return "absent"
	case MarkerProxyGiver:
		return "proxy-giver"
	case MarkerProxyHolder:
		return "proxy-holder"
	default:
		return "unknown"
	}
}

// Attendee is one name listed in a session's presence block.
type Attendee struct {
	Name   string
	Marker Marker
	// Proxy names the other side of a proxy arrangement, if any.
	Proxy string
}

// Present reports whether the attendee counts as present. Proxy givers count
// only when countProxyGivers is set.
func (a Attendee) Present(countProxyGivers bool) bool {
	switch a.Marker {
	case MarkerPresent, MarkerProxyHolder:
		return true
	case MarkerProxyGiver:
		return countProxyGivers
	default:
		return false
	}
}

// Choice is a single vote cast on a deliberation.
type Choice int

const (
	ChoiceFor Choice = iota
	ChoiceAgainst
	ChoiceAbstain
	ChoiceNotParticipating
)

func (c Choice) String() string {
	switch c {
	case ChoiceFor:
		return "for"
	case ChoiceAgainst:
		return "against"
	case ChoiceAbstain:
		return "abstain"
	case ChoiceNotParticipating:
		return "not-participating"
	default:
		return "unknown"
	}
}

// Participating reports whether the choice expresses a position on the vote.
func (c Choice) Participating() bool {
	return c != ChoiceNotParticipating
}

// Vote is one vote record: a named member (Count 1) or an anonymous bloc
// known only by its counter.
type Vote struct {
	Voter  string
	Choice Choice
	Count  int
}

// Bloc reports whether the vote stands for an unnamed group of voters.
func (v Vote) Bloc() bool { return v.Voter == "" }

// Deliberation is one item put to a vote during a session.
type Deliberation struct {
	ID      string
	Title   string
	Summary string
	Themes  []string
	// Mode is the raw outcome marker recorded in the document.
	Mode string
	// AdoptedUnanimously is set when Mode is one of the configured unanimous markers.
	AdoptedUnanimously bool
	Votes              []Vote
}

// Tally sums vote counts per choice.
func (d Deliberation) Tally() map[Choice]int {
	out := make(map[Choice]int, 4)
	for _, v := range d.Votes {
		out[v.Choice] += v.Count
	}
	return out
}

// Voters returns the named voters for a choice, in document order.
func (d Deliberation) Voters(choice Choice) []string {
	var names []string
	for _, v := range d.Votes {
		if v.Choice == choice && !v.Bloc() {
			names = append(names, v.Voter)
		}
	}
	return names
}

// Session is one council meeting.
type Session struct {
	Date          time.Time
	Place         string
	Commune       string
	Source        string
	Attendees     []Attendee
	Deliberations []Deliberation
}

// Year returns the calendar year of the session.
func (s Session) Year() int { return s.Date.Year() }

// DateString returns the session date as YYYY-MM-DD.
func (s Session) DateString() string { return s.Date.Format(dateLayout) }

// Header is the column label used in attendance tables:
// "2021-11-22 (Mairie) – Taluyers" with empty parts omitted.
func (s Session) Header() string {
	var b strings.Builder
	b.WriteString(s.DateString())
	if s.Place != "" {
		b.WriteString(" (")
		b.WriteString(s.Place)
		b.WriteString(")")
	}
	if s.Commune != "" {
		b.WriteString(" – ")
		b.WriteString(s.Commune)
	}
	return b.String()
}

// Names returns every raw name mentioned in the presence block, in document order.
func (s Session) Names() []string {
	names := make([]string, 0, len(s.Attendees))
	for _, a := range s.Attendees {
		names = append(names, a.Name)
	}
	return names
}
