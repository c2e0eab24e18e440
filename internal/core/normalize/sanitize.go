package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// control reports runes that never belong in a title or a search term: C0 and
// C1 controls other than tab, newline and carriage return, plus the error rune
// invalid bytes decode to
func control(r rune) bool {
	switch r {
	case '\t', '\n', '\r':
		return false
	case utf8.RuneError:
		return true
	}
	return unicode.Is(unicode.Cc, r)
}

// stripControls drops control runes and invalid bytes
func stripControls() transform.Transformer { return runes.Remove(runes.Predicate(control)) }

// Sanitize drops control runes and invalid bytes. Clean input is returned as is
func Sanitize(s string) string {
	if utf8.ValidString(s) && strings.IndexFunc(s, control) < 0 {
		return s
	}
	out, _, err := transform.String(stripControls(), s)
	if err != nil {
		return strings.Map(func(r rune) rune {
			if control(r) {
				return -1
			}
			return r
		}, s)
	}
	return out
}
