package match

import (
	"regexp"
	"strings"
)

var (
	// noiseSegment matches bracketed segments carrying release noise,
	// e.g. "(feat. X)", "[Remastered 2011]", "(Live at Wembley)".
	noiseSegment = regexp.MustCompile(`(?i)[(\[][^)\]]*(feat|ft\.|remaster|live|deluxe|edit|version|mix)[^)\]]*[)\]]`)

	// dashSuffix matches the trailing " - Anything" suffix pattern,
	// e.g. "Title - Remastered 2011" or "Title - Radio Edit".
	dashSuffix = regexp.MustCompile(`\s-\s.*`)
)

// CleanTitle strips known noise patterns from a catalog title before lookup.
// Bracketed segments that do not contain a noise keyword are preserved.
func CleanTitle(title string) string {
	title = noiseSegment.ReplaceAllString(title, "")
	title = dashSuffix.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}
