// Package slug derives URL slugs and accent-folded text from display names.
// Category and country slugs are stored next to the names they derive from,
// and the search endpoint folds its query the same way Postgres unaccent()
// folds the columns.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold removes diacritics: "Chêne vert" → "Chene vert".
func Fold(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		return s
	}
	return out
}

// Make folds, lowercases and dashes a display name: "Côte d'Ivoire" →
// "cote-d-ivoire".
func Make(s string) string {
	folded := strings.ToLower(Fold(s))
	var b strings.Builder
	b.Grow(len(folded))
	lastDash := true // swallow leading separators
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
