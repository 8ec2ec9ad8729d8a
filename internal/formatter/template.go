// package formatter renders playlist data to the M3U handoff format and
// builds library-relative track paths from a configurable template.
package formatter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/NoNoBzH22/CineVault-Lite/internal/models"
)

// DefaultPathTemplate mirrors the spotdl default layout.
const DefaultPathTemplate = "{artist_name}/{album_name}{multi_disc_path}/{track_num}. {track_name}.ogg"

// templateVar matches {variable} placeholders, non-greedily so adjacent
// placeholders resolve independently.
var templateVar = regexp.MustCompile(`\{(.+?)\}`)

// pathEscapes maps filesystem-forbidden characters to visually similar
// full-width substitutes.
var pathEscapes = strings.NewReplacer(
	`\`, "＼",
	"/", "／",
	":", "：",
	"*", "＊",
	"?", "？",
	`"`, "＂",
	"<", "＜",
	">", "＞",
	"|", "￤",
)

var (
	edgeSpaces   = regexp.MustCompile(`(^ +| +$)`)
	trailingDots = regexp.MustCompile(`\.+([^\p{L}\p{N}_]|$)`)
)

// EscapePath sanitizes a rendered path for use as a filename: forbidden
// characters become full-width, runs of leading/trailing spaces collapse to a
// single space, and runs of dots before a non-word character or the end of
// the string become a single full-width dot.
func EscapePath(s string) string {
	s = pathEscapes.Replace(s)
	s = edgeSpaces.ReplaceAllString(s, " ")
	s = trailingDots.ReplaceAllString(s, "．$1")
	return s
}

// RenderPath expands the template variables for a track and escapes the
// result. Unknown variables are left in place verbatim.
//
// The whole rendered string is escaped, separators from the template
// included. The output is a handoff artifact, not a real filesystem path, so
// exact reproduction matters more than usable separators.
func RenderPath(template string, track models.Track) string {
	rendered := templateVar.ReplaceAllStringFunc(template, func(placeholder string) string {
		name := placeholder[1 : len(placeholder)-1]
		value, ok := templateValue(name, track)
		if !ok {
			return placeholder
		}
		return value
	})
	return EscapePath(rendered)
}

func templateValue(name string, track models.Track) (string, bool) {
	switch name {
	case "track_name":
		if track.Title == "" {
			return "Unknown Track", true
		}
		return track.Title, true
	case "artist_name":
		if len(track.Artists) == 0 {
			return "Unknown Artist", true
		}
		return track.Artists[0], true
	case "all_artist_names":
		if len(track.Artists) == 0 {
			return "Unknown Artist", true
		}
		return track.ArtistNames(), true
	case "album_name":
		if track.Album == "" {
			return "Unknown Album", true
		}
		return track.Album, true
	case "track_num":
		return strconv.Itoa(track.TrackNumber), true
	case "release_year":
		return track.ReleaseYear(), true
	case "multi_disc_path":
		if track.DiscNumber > 1 {
			return fmt.Sprintf("/CD %d", track.DiscNumber), true
		}
		return "", true
	default:
		return "", false
	}
}
