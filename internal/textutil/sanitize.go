package textutil

import (
	"strings"
	"unicode"
)

// SanitizeFileName turns a free-form label into a portable file name stem:
// diacritics are dropped, runs of spaces and separators become a single
// dash, and anything outside letters, digits, dot, dash and underscore is
// removed. "Conseil: Taluyers 2024/2025?" becomes "Conseil-Taluyers-2024-2025".
func SanitizeFileName(name string) string {
	name = StripDiacritics(strings.TrimSpace(name))
	var b strings.Builder
	b.Grow(len(name))
	pendingDash := false
	for _, r := range name {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_'):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '/' || r == '\\' || r == ':':
			pendingDash = true
		}
	}
	return strings.Trim(b.String(), ".-")
}
