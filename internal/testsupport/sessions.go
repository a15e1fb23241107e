package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// Vote builds the vote block of a deliberation document.
type Vote struct {
	Mode         string
	For          []string
	Against      []string
	Abstain      []string
	NotVoting    []string
	ForCount     *int
	AgainstCount *int
	AbstainCount *int
}

// Deliberation builds one deliberation document entry.
type Deliberation struct {
	ID    string
	Title string
	Vote  Vote
}

// Proxy is an EXCUSE_AVEC_POUVOIR entry.
type Proxy struct {
	Giver  string
	Holder string
}

// SessionDoc describes a session document in the extraction schema.
type SessionDoc struct {
	Commune       string
	Date          string
	Place         string
	Present       []string
	Excused       []string
	Absent        []string
	Proxies       []Proxy
	Deliberations []Deliberation
}

// Count returns a pointer for vote counters.
func Count(n int) *int { return &n }

// Unanimous returns a deliberation adopted unanimously with n votes for.
func Unanimous(id string, n int) Deliberation {
	return Deliberation{ID: id, Title: "Délibération " + id, Vote: Vote{Mode: "UNANIMITE", ForCount: Count(n)}}
}

// Majority returns a majority deliberation with anonymous counters.
func Majority(id string, forCount, against, abstain int) Deliberation {
	return Deliberation{ID: id, Title: "Délibération " + id, Vote: Vote{
		Mode:         "MAJORITE",
		ForCount:     Count(forCount),
		AgainstCount: Count(against),
		AbstainCount: Count(abstain),
	}}
}

// Map renders the document in the on-disk schema.
func (d SessionDoc) Map() map[string]any {
	proxies := make([]any, 0, len(d.Proxies))
	for _, p := range d.Proxies {
		proxies = append(proxies, map[string]any{"mandant": p.Giver, "mandataire": p.Holder})
	}
	delibs := make([]any, 0, len(d.Deliberations))
	for _, delib := range d.Deliberations {
		delibs = append(delibs, map[string]any{
			"id":     delib.ID,
			"titre":  delib.Title,
			"themes": []string{},
			"vote": map[string]any{
				"mode": delib.Vote.Mode,
				"detail": map[string]any{
					"POUR":              nonNil(delib.Vote.For),
					"CONTRE":            nonNil(delib.Vote.Against),
					"ABSTENTION":        nonNil(delib.Vote.Abstain),
					"NE_PREND_PAS_PART": nonNil(delib.Vote.NotVoting),
				},
				"compteur": map[string]any{
					"pour":       delib.Vote.ForCount,
					"contre":     delib.Vote.AgainstCount,
					"abstention": delib.Vote.AbstainCount,
				},
			},
		})
	}
	seance := map[string]any{
		"presence": map[string]any{
			"PRESENT":             nonNil(d.Present),
			"EXCUSE":              nonNil(d.Excused),
			"ABSENT":              nonNil(d.Absent),
			"EXCUSE_AVEC_POUVOIR": proxies,
		},
	}
	if d.Date != "" {
		seance["date"] = d.Date
	}
	if d.Place != "" {
		seance["lieu"] = d.Place
	}
	return map[string]any{
		"commune":       d.Commune,
		"seance":        seance,
		"deliberations": delibs,
	}
}

// WriteSessionJSON writes doc as dir/name and returns the path.
func WriteSessionJSON(t testing.TB, dir, name string, doc SessionDoc) string {
	t.Helper()
	data, err := json.MarshalIndent(doc.Map(), "", "  ")
	if err != nil {
		t.Fatalf("marshal %s: %v", name, err)
	}
	return WriteRaw(t, dir, name, data)
}

// WriteSessionYAML writes doc as YAML to dir/name and returns the path.
func WriteSessionYAML(t testing.TB, dir, name string, doc SessionDoc) string {
	t.Helper()
	data, err := yaml.Marshal(doc.Map())
	if err != nil {
		t.Fatalf("marshal %s: %v", name, err)
	}
	return WriteRaw(t, dir, name, data)
}

// WriteRaw writes arbitrary bytes to dir/name, creating dir as needed.
func WriteRaw(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
