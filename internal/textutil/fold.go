package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var upperCaser = cases.Upper(language.Und)

// StripDiacritics removes combining marks after canonical decomposition, so
// "Élise Müller" becomes "Elise Muller".
func StripDiacritics(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, value)
	if err != nil {
		return value
	}
	return out
}

// CollapseSpace trims the value and replaces every run of whitespace with a
// single ASCII space.
func CollapseSpace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// Fold returns the accent-free, uppercase, single-spaced form of value.
func Fold(value string) string {
	return upperCaser.String(CollapseSpace(StripDiacritics(value)))
}

// IsUpperWord reports whether token contains at least one letter and no
// lowercase letters. Hyphens, apostrophes and dots are allowed.
func IsUpperWord(token string) bool {
	hasLetter := false
	for _, r := range token {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
