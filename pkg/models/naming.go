package models

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify derives a machine-safe project name from a display name.
//
// Accented characters are decomposed and stripped of combining marks so
// that names like "Café Métro" slug to "cafe-metro" instead of losing
// the letters entirely. Any remaining run of non-alphanumeric characters
// collapses to a single hyphen.
func Slugify(displayName string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	decomposed, _, err := transform.String(stripMarks, displayName)
	if err != nil {
		// Transform only fails on malformed UTF-8; fall back to the raw
		// input so the caller still gets a usable slug.
		decomposed = displayName
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	pendingHyphen := false
	for _, r := range strings.ToLower(decomposed) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}
