package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// apostrophes are deleted outright so "God's Plan" and "God’s Plan" compare equal.
var apostrophes = strings.NewReplacer("'", "", "’", "")

// Normalize canonicalizes free text for comparison.
//
// The result contains only lowercase ASCII letters, digits and single interior
// spaces: input is lowercased, apostrophes are deleted, accented characters
// are decomposed and stripped of combining marks ("é" → "e"), every other
// character becomes a space, and runs of whitespace collapse. Idempotent on
// its own output.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = apostrophes.Replace(strings.ToLower(text))

	decomposer := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	if stripped, _, err := transform.String(decomposer, text); err == nil {
		text = stripped
	}

	var b strings.Builder
	b.Grow(len(text))
	lastSpace := true
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
		} else if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}

	return strings.TrimRight(b.String(), " ")
}
