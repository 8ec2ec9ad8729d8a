package formatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/NoNoBzH22/CineVault-Lite/internal/models"
)

// Entry is one track reference recovered from an M3U document. Artist is
// empty when the EXTINF line carries no " - " separator.
type Entry struct {
	Artist string
	Title  string
}

// RenderM3U converts a playlist export to extended M3U: the #EXTM3U header, a
// #PLAYLIST name line, then per track an #EXTINF line and a relative path
// built from the given template. Lines are joined with single newlines and no
// trailing newline; the output is UTF-8 throughout.
func RenderM3U(export *models.PlaylistExport, pathTemplate string) []byte {
	var buf bytes.Buffer

	buf.WriteString("#EXTM3U")
	buf.WriteString(fmt.Sprintf("\n#PLAYLIST:%s", export.Playlist.Name))

	for _, track := range export.Tracks {
		seconds := track.DurationMS / 1000
		artists := track.ArtistNames()
		if artists == "" {
			artists = "Unknown Artist"
		}
		buf.WriteString(fmt.Sprintf("\n#EXTINF:%d,%s - %s", seconds, artists, track.Title))
		buf.WriteString(fmt.Sprintf("\n../%s", RenderPath(pathTemplate, track)))
	}

	return buf.Bytes()
}

// ParseM3U extracts the playlist name and the (artist, title) entries from an
// M3U document. Only #PLAYLIST and #EXTINF lines are consulted: each #EXTINF
// line is split on its first comma, and the remainder on its first " - ",
// with both sides trimmed.
func ParseM3U(data []byte) (string, []Entry) {
	var name string
	var entries []Entry

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")

		if after, ok := strings.CutPrefix(line, "#PLAYLIST:"); ok {
			name = after
			continue
		}

		after, ok := strings.CutPrefix(line, "#EXTINF:")
		if !ok {
			continue
		}

		_, info, found := strings.Cut(after, ",")
		if !found {
			continue
		}

		artist, title, found := strings.Cut(info, " - ")
		if !found {
			entries = append(entries, Entry{Title: strings.TrimSpace(info)})
			continue
		}
		entries = append(entries, Entry{Artist: strings.TrimSpace(artist), Title: strings.TrimSpace(title)})
	}

	return name, entries
}
