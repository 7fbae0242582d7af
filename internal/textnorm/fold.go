// Package textnorm normalizes free text for case- and accent-insensitive matching.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s, strips combining marks (so "Almacén" and "almacen"
// compare equal) and collapses internal whitespace.
func Fold(s string) string {
	// transform.Chain keeps per-call state, so it is built fresh every time.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// ContainsAny reports whether the folded text contains any of the folded keywords.
// It returns the first keyword that matched.
func ContainsAny(text string, keywords []string) (string, bool) {
	folded := Fold(text)
	for _, kw := range keywords {
		if k := Fold(kw); k != "" && strings.Contains(folded, k) {
			return kw, true
		}
	}
	return "", false
}
