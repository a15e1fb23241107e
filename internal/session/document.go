package session

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// document mirrors the extraction output written for every session. Only the
// loader sees it; everything downstream works on Session.
type document struct {
	Commune       string         `json:"commune" yaml:"commune"`
	Seance        *seance        `json:"seance" yaml:"seance"`
	Deliberations []rawDelibItem `json:"deliberations" yaml:"deliberations"`
}

type seance struct {
	Date     looseString `json:"date" yaml:"date"`
	Lieu     string      `json:"lieu" yaml:"lieu"`
	Presence *presence   `json:"presence" yaml:"presence"`
}

type presence struct {
	Present nameList  `json:"PRESENT" yaml:"PRESENT"`
	Excuse  nameList  `json:"EXCUSE" yaml:"EXCUSE"`
	Absent  nameList  `json:"ABSENT" yaml:"ABSENT"`
	Proxies proxyList `json:"EXCUSE_AVEC_POUVOIR" yaml:"EXCUSE_AVEC_POUVOIR"`
}

type rawDelibItem struct {
	ID     looseString `json:"id" yaml:"id"`
	Titre  string      `json:"titre" yaml:"titre"`
	Resume string      `json:"resume" yaml:"resume"`
	Themes nameList    `json:"themes" yaml:"themes"`
	Vote   *rawVote    `json:"vote" yaml:"vote"`
}

type rawVote struct {
	Mode     string      `json:"mode" yaml:"mode"`
	Detail   rawDetail   `json:"detail" yaml:"detail"`
	Compteur rawCompteur `json:"compteur" yaml:"compteur"`
}

type rawDetail struct {
	Pour           nameList `json:"POUR" yaml:"POUR"`
	Contre         nameList `json:"CONTRE" yaml:"CONTRE"`
	Abstention     nameList `json:"ABSTENTION" yaml:"ABSTENTION"`
	NePrendPasPart nameList `json:"NE_PREND_PAS_PART" yaml:"NE_PREND_PAS_PART"`
}

type rawCompteur struct {
	Pour           looseInt `json:"pour" yaml:"pour"`
	Contre         looseInt `json:"contre" yaml:"contre"`
	Abstention     looseInt `json:"abstention" yaml:"abstention"`
	NePrendPasPart looseInt `json:"ne_prend_pas_part" yaml:"ne_prend_pas_part"`
}

// looseString accepts a string, a number, or null.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = looseString(scalarString(raw))
	return nil
}

func (s *looseString) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		*s = ""
		return nil
	}
	*s = looseString(node.Value)
	return nil
}

// looseInt accepts an integer, an integral float such as 19.0, or a numeric
// string. Anything else decodes as unset, so a badly typed counter never
// rejects the whole document.
type looseInt struct {
	value int
	set   bool
}

func (i *looseInt) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = intFrom(raw)
	return nil
}

func (i *looseInt) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*i = intFrom(raw)
	return nil
}

func intFrom(raw any) looseInt {
	switch v := raw.(type) {
	case int:
		return looseInt{value: v, set: true}
	case int64:
		return looseInt{value: int(v), set: true}
	case uint64:
		return looseInt{value: int(v), set: true}
	case float64:
		return integral(v)
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.Atoi(s); err == nil {
			return looseInt{value: n, set: true}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return integral(f)
		}
	}
	return looseInt{}
}

func integral(f float64) looseInt {
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return looseInt{}
	}
	return looseInt{value: int(f), set: true}
}

// nameList accepts a list of names and silently drops anything that is not a
// non-empty string. A non-list value decodes to an empty list.
type nameList []string

func (l *nameList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = namesFrom(raw)
	return nil
}

func (l *nameList) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*l = namesFrom(raw)
	return nil
}

type proxy struct {
	Mandant    string
	Mandataire string
}

// proxyList accepts a list of {mandant, mandataire} objects and skips entries
// of any other shape.
type proxyList []proxy

func (l *proxyList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = proxiesFrom(raw)
	return nil
}

func (l *proxyList) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*l = proxiesFrom(raw)
	return nil
}

func namesFrom(raw any) []string {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		name, ok := item.(string)
		if !ok {
			continue
		}
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func proxiesFrom(raw any) []proxy {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]proxy, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		p := proxy{
			Mandant:    strings.TrimSpace(scalarString(entry["mandant"])),
			Mandataire: strings.TrimSpace(scalarString(entry["mandataire"])),
		}
		if p.Mandant == "" && p.Mandataire == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func scalarString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// toSession validates the decoded document and converts it to the typed model.
func (d *document) toSession(path string, unanimous func(string) bool) (Session, error) {
	if d.Seance == nil {
		return Session{}, malformed(path, "missing seance block", nil)
	}
	dateValue := strings.TrimSpace(string(d.Seance.Date))
	if dateValue == "" {
		return Session{}, malformed(path, "missing seance.date", nil)
	}
	date, err := time.Parse(dateLayout, dateValue)
	if err != nil {
		return Session{}, malformed(path, fmt.Sprintf("invalid seance.date %q", dateValue), err)
	}
	if d.Seance.Presence == nil {
		return Session{}, malformed(path, "missing seance.presence", nil)
	}

	s := Session{
		Date:      date,
		Place:     strings.TrimSpace(d.Seance.Lieu),
		Commune:   strings.TrimSpace(d.Commune),
		Source:    path,
		Attendees: d.Seance.Presence.attendees(),
	}
	for _, item := range d.Deliberations {
		s.Deliberations = append(s.Deliberations, item.toDeliberation(unanimous))
	}
	return s, nil
}

func (p *presence) attendees() []Attendee {
	var out []Attendee
	for _, name := range p.Present {
		out = append(out, Attendee{Name: name, Marker: MarkerPresent})
	}
	for _, name := range p.Excuse {
		out = append(out, Attendee{Name: name, Marker: MarkerExcused})
	}
	for _, name := range p.Absent {
		out = append(out, Attendee{Name: name, Marker: MarkerAbsent})
	}
	for _, px := range p.Proxies {
		if px.Mandant != "" {
			out = append(out, Attendee{Name: px.Mandant, Marker: MarkerProxyGiver, Proxy: px.Mandataire})
		}
		if px.Mandataire != "" {
			out = append(out, Attendee{Name: px.Mandataire, Marker: MarkerProxyHolder, Proxy: px.Mandant})
		}
	}
	return out
}

func (r rawDelibItem) toDeliberation(unanimous func(string) bool) Deliberation {
	d := Deliberation{
		ID:      strings.TrimSpace(string(r.ID)),
		Title:   strings.TrimSpace(r.Titre),
		Summary: strings.TrimSpace(r.Resume),
		Themes:  []string(r.Themes),
	}
	if r.Vote == nil {
		return d
	}
	d.Mode = strings.ToUpper(strings.TrimSpace(r.Vote.Mode))
	d.AdoptedUnanimously = d.Mode != "" && unanimous != nil && unanimous(d.Mode)
	d.Votes = appendVotes(d.Votes, ChoiceFor, r.Vote.Detail.Pour, r.Vote.Compteur.Pour)
	d.Votes = appendVotes(d.Votes, ChoiceAgainst, r.Vote.Detail.Contre, r.Vote.Compteur.Contre)
	d.Votes = appendVotes(d.Votes, ChoiceAbstain, r.Vote.Detail.Abstention, r.Vote.Compteur.Abstention)
	d.Votes = appendVotes(d.Votes, ChoiceNotParticipating, r.Vote.Detail.NePrendPasPart, r.Vote.Compteur.NePrendPasPart)
	return d
}

// appendVotes emits one record per named voter, plus a bloc record for any
// counted voters the document does not name.
func appendVotes(votes []Vote, choice Choice, names []string, counter looseInt) []Vote {
	for _, name := range names {
		votes = append(votes, Vote{Voter: name, Choice: choice, Count: 1})
	}
	if counter.set && counter.value > len(names) {
		votes = append(votes, Vote{Choice: choice, Count: counter.value - len(names)})
	}
	return votes
}
