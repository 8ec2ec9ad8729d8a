package match

import (
	"math"
	"testing"
)

func TestRatio(t *testing.T) {
	tc := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{
			name: "identical strings",
			a:    "gods plan",
			b:    "gods plan",
			want: 1.0,
		},
		{
			name: "both empty",
			a:    "",
			b:    "",
			want: 0.0,
		},
		{
			name: "one empty",
			a:    "abc",
			b:    "",
			want: 0.0,
		},
		{
			name: "disjoint strings",
			a:    "abc",
			b:    "xyz",
			want: 0.0,
		},
		{
			// difflib.SequenceMatcher(None, "abcd", "bcde").ratio() == 0.75
			name: "partial overlap",
			a:    "abcd",
			b:    "bcde",
			want: 0.75,
		},
		{
			// Longest block "abcdefghi" (9) out of 20 total characters.
			name: "single trailing divergence",
			a:    "abcdefghij",
			b:    "abcdefghix",
			want: 0.9,
		},
		{
			// Greedy alignment matches "e" after the longest block " jumped",
			// mirroring difflib on this classic pair.
			name: "recursive remainder matching",
			a:    "private",
			b:    "pirate",
			want: 10.0 / 13.0,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := Ratio(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}

	t.Run("symmetric total length", func(t *testing.T) {
		// Ratio uses T = len(a)+len(b), so swapping arguments keeps the score.
		a, b := "linkin park", "linkin parc"
		if Ratio(a, b) != Ratio(b, a) {
			t.Errorf("Ratio should be symmetric for %q and %q", a, b)
		}
	})
}

func TestTitleSimilarity(t *testing.T) {
	t.Run("identical titles score 1", func(t *testing.T) {
		if got := TitleSimilarity("God's Plan", "God's Plan"); got != 1.0 {
			t.Errorf("expected 1.0, got %v", got)
		}
	})

	t.Run("normalized forms are compared", func(t *testing.T) {
		if got := TitleSimilarity("God's Plan", "Gods Plan"); got != 1.0 {
			t.Errorf("expected 1.0 after normalization, got %v", got)
		}
	})

	t.Run("empty inputs never clear thresholds", func(t *testing.T) {
		if got := TitleSimilarity("", ""); got > ArtistRatioThreshold {
			t.Errorf("empty titles scored %v, want at most %v", got, ArtistRatioThreshold)
		}
	})

	t.Run("boundary score is excluded by strict comparison", func(t *testing.T) {
		// These normalize to "abcdefghij" and "abcdefghix": exactly 0.9.
		score := TitleSimilarity("abcdefghij", "abcdefghix")
		if math.Abs(score-0.9) > 1e-9 {
			t.Fatalf("expected boundary score 0.9, got %v", score)
		}
		if score > TitleRatioThreshold {
			t.Error("score of exactly 0.9 must not exceed the title threshold")
		}
	})
}

func TestArtistsMatch(t *testing.T) {
	tc := []struct {
		name     string
		external string
		library  string
		want     bool
	}{
		{
			name:     "candidate list contains library artist",
			external: "Drake, Wizkid",
			library:  "Drake",
			want:     true,
		},
		{
			name:     "empty library artist never matches",
			external: "Drake",
			library:  "",
			want:     false,
		},
		{
			name:     "exact match",
			external: "Daft Punk",
			library:  "Daft Punk",
			want:     true,
		},
		{
			name:     "containment either direction",
			external: "The Beatles",
			library:  "Beatles",
			want:     true,
		},
		{
			name:     "fuzzy match above 0.8",
			external: "Linkin Park",
			library:  "Linkin Parc",
			want:     true,
		},
		{
			name:     "ampersand-delimited candidates",
			external: "Beyoncé & JAY-Z",
			library:  "Jay Z",
			want:     true,
		},
		{
			name:     "unrelated artists",
			external: "Drake",
			library:  "Metallica",
			want:     false,
		},
		{
			name:     "accented external matches plain library",
			external: "Céline Dion",
			library:  "Celine Dion",
			want:     true,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := ArtistsMatch(tt.external, tt.library)
			if got != tt.want {
				t.Errorf("ArtistsMatch(%q, %q) = %v, want %v", tt.external, tt.library, got, tt.want)
			}
		})
	}
}

func TestSplitArtists(t *testing.T) {
	got := SplitArtists("Drake, Wizkid & Kyla")
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d: %v", len(got), got)
	}
	// Band names containing "&" split like everything else; the engine does
	// not special-case them.
	got = SplitArtists("Simon & Garfunkel")
	if len(got) != 2 {
		t.Errorf("expected ampersand band name to split into 2 pieces, got %v", got)
	}
}
