package members

import (
	"strings"

	"quorum/internal/textutil"
)

// Key derivation modes.
const (
	ModeSurname = "surname"
	ModeFull    = "full"
)

// surnamePunctuation is removed from surname keys so "ROMAN-CLAVELLOUX",
// "ROMAN CLAVELLOUX" and "D'ARGENT"/"D’ARGENT" collapse together.
var surnamePunctuation = strings.NewReplacer("-", "", " ", "", ".", "", "'", "", "’", "")

type normalizer struct {
	mode         string
	titles       map[string]struct{}
	equivalences map[string]string
}

func newNormalizer(opts Options) normalizer {
	n := normalizer{
		mode:         opts.Mode,
		titles:       make(map[string]struct{}, len(opts.Titles)),
		equivalences: make(map[string]string, len(opts.Equivalences)),
	}
	if n.mode != ModeFull {
		n.mode = ModeSurname
	}
	for _, title := range opts.Titles {
		if folded := textutil.Fold(title); folded != "" {
			n.titles[folded] = struct{}{}
		}
	}
	for from, to := range opts.Equivalences {
		n.equivalences[n.fold(from)] = n.fold(to)
	}
	return n
}

// fold brings a configured key into the same shape as a derived one.
func (n normalizer) fold(value string) string {
	folded := textutil.Fold(value)
	if n.mode == ModeSurname {
		return surnamePunctuation.Replace(folded)
	}
	return folded
}

func (n normalizer) key(raw string) MemberKey {
	tokens := n.stripTitles(strings.Fields(raw))
	if len(tokens) == 0 {
		return ""
	}
	var key string
	if n.mode == ModeFull {
		key = textutil.Fold(strings.Join(tokens, " "))
	} else {
		key = surnamePunctuation.Replace(textutil.Fold(surname(tokens)))
	}
	if canonical, ok := n.equivalences[key]; ok {
		key = canonical
	}
	return MemberKey(key)
}

func (n normalizer) stripTitles(tokens []string) []string {
	for len(tokens) > 1 && n.isTitle(tokens[0]) {
		tokens = tokens[1:]
	}
	return tokens
}

func (n normalizer) isTitle(token string) bool {
	folded := textutil.Fold(token)
	if _, ok := n.titles[folded]; ok {
		return true
	}
	_, ok := n.titles[strings.TrimSuffix(folded, ".")]
	return ok
}

// surname keeps the trailing run of fully uppercase tokens ("Jean SAYER
// CORTAZZI" -> "SAYER CORTAZZI"), falling back to the last token.
func surname(tokens []string) string {
	start := len(tokens)
	for start > 0 && textutil.IsUpperWord(tokens[start-1]) {
		start--
	}
	if start == len(tokens) {
		return tokens[len(tokens)-1]
	}
	return strings.Join(tokens[start:], " ")
}
