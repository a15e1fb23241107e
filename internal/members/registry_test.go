package members

import (
	"errors"
	"testing"
)

var defaultTitles = []string{"M", "M.", "MR", "MME", "MLLE", "MADAME", "MONSIEUR"}

func TestCanonicalizeSurnameMode(t *testing.T) {
	r := NewRegistry(Options{Titles: defaultTitles, Equivalences: map[string]string{"BRACHETCONVERT": "BRACHET"}})

	tests := []struct {
		raw  string
		want MemberKey
	}{
		{"M. Jean DUPONT", "DUPONT"},
		{"Jean DUPONT", "DUPONT"},
		{"DUPONT", "DUPONT"},
		{"Mme  Hélène   ROMAN-CLAVELLOUX", "ROMANCLAVELLOUX"},
		{"Hélène ROMAN CLAVELLOUX", "ROMANCLAVELLOUX"},
		{"Jean SAYER CORTAZZI", "SAYERCORTAZZI"},
		{"Madame Élodie DÉSIRÉ", "DESIRE"},
		{"Anne D’ARGENT", "DARGENT"},
		{"Anne D'ARGENT", "DARGENT"},
		{"Sophie Brachet-Convert", "BRACHET"},
		{"Sophie BRACHET-CONVERT", "BRACHET"},
		{"Sophie BRACHET", "BRACHET"},
		{"Monsieur Paul", "PAUL"},
		{"M.", "M"},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := r.Canonicalize(tt.raw)
			if got != tt.want {
				t.Fatalf("Canonicalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
			if again := r.Canonicalize(string(got)); again != got {
				t.Fatalf("Canonicalize not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestSurnameEquivalencesIgnorePunctuation(t *testing.T) {
	r := NewRegistry(Options{Titles: defaultTitles, Equivalences: map[string]string{
		"Brachet-Convert": "brachet",
		"DURAND":          "Durand-Petit",
		"D'Argent":        "DARGENT DE LA TOUR",
	}})

	tests := []struct {
		raw  string
		want MemberKey
	}{
		{"Sophie BRACHET-CONVERT", "BRACHET"},
		{"Sophie BRACHETCONVERT", "BRACHET"},
		{"Paul DURAND", "DURANDPETIT"},
		{"Paul DURAND-PETIT", "DURANDPETIT"},
		{"Anne D’ARGENT", "DARGENTDELATOUR"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := r.Canonicalize(tt.raw)
			if got != tt.want {
				t.Fatalf("Canonicalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
			if again := r.Canonicalize(string(got)); again != got {
				t.Fatalf("Canonicalize not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestCanonicalizeFullMode(t *testing.T) {
	r := NewRegistry(Options{Mode: ModeFull, Titles: defaultTitles})

	tests := []struct {
		raw  string
		want MemberKey
	}{
		{"M. Jean DUPONT", "JEAN DUPONT"},
		{"jean  dupont", "JEAN DUPONT"},
		{"Jéan\tDupont ", "JEAN DUPONT"},
		{"Mme Anne-Marie MARTIN", "ANNE-MARIE MARTIN"},
	}
	for _, tt := range tests {
		if got := r.Canonicalize(tt.raw); got != tt.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

// Spelling variants the rules do not cover stay distinct; this is the known
// limit of the heuristic and SuspectedDuplicates is the safety net.
func TestUnmergedVariantsAreFlagged(t *testing.T) {
	r := NewRegistry(Options{Titles: defaultTitles})
	for _, raw := range []string{"Sophie BRACHET", "Sophie BRACHET-CONVERT", "Luc LE", "Marc LEBRUN"} {
		if _, err := r.Register(raw); err != nil {
			t.Fatalf("Register(%q): %v", raw, err)
		}
	}
	if r.Len() != 4 {
		t.Fatalf("expected 4 distinct members, got %d (%v)", r.Len(), r.Keys())
	}
	suspects := r.SuspectedDuplicates()
	if len(suspects) != 1 {
		t.Fatalf("suspects = %+v", suspects)
	}
	if suspects[0].Short != "BRACHET" || suspects[0].Long != "BRACHETCONVERT" {
		t.Fatalf("unexpected suspect pair %+v", suspects[0])
	}
}

func TestRegisterOrderAndVariants(t *testing.T) {
	r := NewRegistry(Options{Titles: defaultTitles})
	for _, raw := range []string{"Jean DUPONT", "Anne MARTIN", "M. Jean DUPONT", "", "Jean  DUPONT"} {
		if _, err := r.Register(raw); err != nil {
			t.Fatalf("Register(%q): %v", raw, err)
		}
	}
	keys := r.Keys()
	if len(keys) != 2 || keys[0] != "DUPONT" || keys[1] != "MARTIN" {
		t.Fatalf("keys = %v", keys)
	}
	variants := r.Variants("DUPONT")
	if len(variants) != 2 || variants[0] != "Jean DUPONT" || variants[1] != "M. Jean DUPONT" {
		t.Fatalf("variants = %v", variants)
	}
	if !r.Contains("MARTIN") || r.Contains("DURAND") {
		t.Fatal("Contains mismatch")
	}
}

func TestClosedRegistryRejectsNewMembers(t *testing.T) {
	r := NewRegistry(Options{})
	if _, err := r.Register("Jean DUPONT"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	r.Close()
	if !r.Closed() {
		t.Fatal("expected closed registry")
	}
	key, err := r.Register("Anne MARTIN")
	if !errors.Is(err, ErrRegistryClosed) {
		t.Fatalf("expected ErrRegistryClosed, got %v", err)
	}
	if key != "MARTIN" {
		t.Fatalf("closed registry should still canonicalize, got %q", key)
	}
	if r.Len() != 1 {
		t.Fatalf("closed registry grew to %d", r.Len())
	}
	if got := r.Canonicalize("Anne MARTIN"); got != "MARTIN" {
		t.Fatalf("Canonicalize after close = %q", got)
	}
}
