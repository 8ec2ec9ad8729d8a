package formatter

import (
	"testing"

	"github.com/NoNoBzH22/CineVault-Lite/internal/models"
)

func TestEscapePath(t *testing.T) {
	tc := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "forbidden characters become full-width",
			input: `a\b/c:d*e?f"g<h>i|j`,
			want:  "a＼b／c：d＊e？f＂g＜h＞i￤j",
		},
		{
			name:  "leading space run collapses to one space",
			input: "   Name",
			want:  " Name",
		},
		{
			name:  "trailing space run collapses to one space",
			input: "Name   ",
			want:  "Name ",
		},
		{
			name:  "trailing dots become a full-width dot",
			input: "Dr...",
			want:  "Dr．",
		},
		{
			name:  "dot before a space becomes full-width",
			input: "Mr. Brightside",
			want:  "Mr． Brightside",
		},
		{
			name:  "extension dot before a letter survives",
			input: "song.ogg",
			want:  "song.ogg",
		},
		{
			name:  "clean input untouched",
			input: "Plain Name",
			want:  "Plain Name",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapePath(tt.input)
			if got != tt.want {
				t.Errorf("EscapePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRenderPath(t *testing.T) {
	track := models.Track{
		Title:       "Hells Bells",
		Artists:     []string{"AC/DC"},
		Album:       "Back in Black",
		ReleaseDate: "1980-07-25",
		TrackNumber: 1,
		DiscNumber:  1,
		DurationMS:  312880,
	}

	t.Run("default template", func(t *testing.T) {
		got := RenderPath(DefaultPathTemplate, track)
		// Escaping runs over the whole rendered string, so the template's
		// own separators turn full-width along with the artist's slash.
		want := "AC／DC／Back in Black／1． Hells Bells.ogg"
		if got != want {
			t.Errorf("RenderPath = %q, want %q", got, want)
		}
	})

	t.Run("multi disc path", func(t *testing.T) {
		multi := track
		multi.DiscNumber = 2
		got := RenderPath("{album_name}{multi_disc_path}/{track_name}", multi)
		want := "Back in Black／CD 2／Hells Bells"
		if got != want {
			t.Errorf("RenderPath = %q, want %q", got, want)
		}
	})

	t.Run("release year", func(t *testing.T) {
		got := RenderPath("{release_year}/{track_name}", track)
		if got != "1980／Hells Bells" {
			t.Errorf("RenderPath = %q", got)
		}
	})

	t.Run("unknown variables are preserved", func(t *testing.T) {
		got := RenderPath("{bogus}/{track_name}", track)
		if got != "{bogus}／Hells Bells" {
			t.Errorf("RenderPath = %q", got)
		}
	})

	t.Run("missing metadata falls back to placeholders", func(t *testing.T) {
		got := RenderPath("{artist_name}/{album_name}/{track_name}", models.Track{})
		want := "Unknown Artist／Unknown Album／Unknown Track"
		if got != want {
			t.Errorf("RenderPath = %q, want %q", got, want)
		}
	})
}

func TestRenderM3U(t *testing.T) {
	export := &models.PlaylistExport{
		Playlist: models.Playlist{ID: "p1", Name: "Mix", TrackCount: 2},
		Tracks: []models.Track{
			{
				Title:       "God's Plan",
				Artists:     []string{"Drake"},
				Album:       "Scorpion",
				ReleaseDate: "2018-06-29",
				TrackNumber: 7,
				DiscNumber:  1,
				DurationMS:  198973,
			},
			{
				Title:       "One More Time",
				Artists:     []string{"Daft Punk", "Romanthony"},
				Album:       "Discovery",
				ReleaseDate: "2001-03-12",
				TrackNumber: 1,
				DiscNumber:  1,
				DurationMS:  320357,
			},
		},
	}

	got := string(RenderM3U(export, DefaultPathTemplate))
	want := "#EXTM3U\n" +
		"#PLAYLIST:Mix\n" +
		"#EXTINF:198,Drake - God's Plan\n" +
		"../Drake／Scorpion／7． God's Plan.ogg\n" +
		"#EXTINF:320,Daft Punk, Romanthony - One More Time\n" +
		"../Daft Punk／Discovery／1． One More Time.ogg"

	if got != want {
		t.Errorf("RenderM3U mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestParseM3U(t *testing.T) {
	t.Run("extracts name and entries", func(t *testing.T) {
		doc := "#EXTM3U\n" +
			"#PLAYLIST:Road Trip\n" +
			"#EXTINF:198,Drake - God's Plan\n" +
			"../Drake/path.ogg\n" +
			"#EXTINF:240,Instrumental Only\n" +
			"../path.ogg"

		name, entries := ParseM3U([]byte(doc))
		if name != "Road Trip" {
			t.Errorf("expected playlist name %q, got %q", "Road Trip", name)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].Artist != "Drake" || entries[0].Title != "God's Plan" {
			t.Errorf("unexpected first entry: %+v", entries[0])
		}
		if entries[1].Artist != "" || entries[1].Title != "Instrumental Only" {
			t.Errorf("entry without separator should have empty artist, got %+v", entries[1])
		}
	})

	t.Run("only first separator splits artist from title", func(t *testing.T) {
		doc := "#EXTINF:200,Simon & Garfunkel - The Sound of Silence - Acoustic"
		_, entries := ParseM3U([]byte(doc))
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].Artist != "Simon & Garfunkel" {
			t.Errorf("unexpected artist %q", entries[0].Artist)
		}
		if entries[0].Title != "The Sound of Silence - Acoustic" {
			t.Errorf("unexpected title %q", entries[0].Title)
		}
	})

	t.Run("round trips a rendered document", func(t *testing.T) {
		export := &models.PlaylistExport{
			Playlist: models.Playlist{Name: "Mix"},
			Tracks: []models.Track{
				{Title: "Song A", Artists: []string{"Artist A"}, DurationMS: 100000},
				{Title: "Song B", Artists: []string{"Artist B", "Artist C"}, DurationMS: 200000},
			},
		}

		name, entries := ParseM3U(RenderM3U(export, DefaultPathTemplate))
		if name != "Mix" {
			t.Errorf("expected name Mix, got %q", name)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].Artist != "Artist A" || entries[0].Title != "Song A" {
			t.Errorf("unexpected first entry: %+v", entries[0])
		}
		if entries[1].Artist != "Artist B, Artist C" || entries[1].Title != "Song B" {
			t.Errorf("unexpected second entry: %+v", entries[1])
		}
	})
}
