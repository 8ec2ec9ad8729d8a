package match

import (
	"context"
	"errors"
	"testing"

	"github.com/NoNoBzH22/CineVault-Lite/internal/models"
)

type fakeIndex struct {
	tracks        map[string][]models.LibraryTrack
	artists       map[string][]models.LibraryArtist
	artistCatalog map[string][]models.LibraryTrack

	trackQueries  []string
	artistQueries []string

	trackErr  error
	artistErr error
}

func (f *fakeIndex) SearchTracks(_ context.Context, query string, _ int) ([]models.LibraryTrack, error) {
	f.trackQueries = append(f.trackQueries, query)
	if f.trackErr != nil {
		return nil, f.trackErr
	}
	return f.tracks[query], nil
}

func (f *fakeIndex) SearchArtists(_ context.Context, query string, _ int) ([]models.LibraryArtist, error) {
	f.artistQueries = append(f.artistQueries, query)
	if f.artistErr != nil {
		return nil, f.artistErr
	}
	return f.artists[query], nil
}

func (f *fakeIndex) ArtistTracks(_ context.Context, artist models.LibraryArtist) ([]models.LibraryTrack, error) {
	return f.artistCatalog[artist.RatingKey], nil
}

func TestMatchTrack(t *testing.T) {
	ctx := context.Background()

	t.Run("artist match on a title candidate wins", func(t *testing.T) {
		index := &fakeIndex{
			tracks: map[string][]models.LibraryTrack{
				"Song": {
					{RatingKey: "10", Title: "Song (Album Version)", Artist: "Drake"},
				},
			},
		}
		engine := NewEngine(index, 0, nil)

		got, err := engine.MatchTrack(ctx, "Drake", "Song")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.RatingKey != "10" {
			t.Errorf("expected track 10, got %+v", got)
		}
	})

	t.Run("title similarity wins when the artist field is empty", func(t *testing.T) {
		index := &fakeIndex{
			tracks: map[string][]models.LibraryTrack{
				"God's Plan": {
					{RatingKey: "11", Title: "Gods Plan", Artist: ""},
				},
			},
		}
		engine := NewEngine(index, 0, nil)

		got, err := engine.MatchTrack(ctx, "Drake", "God's Plan")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.RatingKey != "11" {
			t.Errorf("expected track 11, got %+v", got)
		}
	})

	t.Run("first acceptable candidate wins", func(t *testing.T) {
		index := &fakeIndex{
			tracks: map[string][]models.LibraryTrack{
				"Song": {
					{RatingKey: "1", Title: "Unrelated", Artist: "Someone Else"},
					{RatingKey: "2", Title: "Song", Artist: "Drake"},
					{RatingKey: "3", Title: "Song", Artist: "Drake"},
				},
			},
		}
		engine := NewEngine(index, 0, nil)

		got, err := engine.MatchTrack(ctx, "Drake", "Song")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.RatingKey != "2" {
			t.Errorf("expected first acceptable track 2, got %+v", got)
		}
	})

	t.Run("raw title re-search happens only on zero results", func(t *testing.T) {
		index := &fakeIndex{
			tracks: map[string][]models.LibraryTrack{
				"Song": {
					{RatingKey: "1", Title: "Completely Different", Artist: "Someone Else"},
				},
			},
		}
		engine := NewEngine(index, 0, nil)

		got, err := engine.MatchTrack(ctx, "Drake", "Song (feat. X)")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected no match, got %+v", got)
		}
		if len(index.trackQueries) != 1 || index.trackQueries[0] != "Song" {
			t.Errorf("expected a single cleaned-title search, got queries %v", index.trackQueries)
		}
	})

	t.Run("raw title re-search recovers noisy library titles", func(t *testing.T) {
		index := &fakeIndex{
			tracks: map[string][]models.LibraryTrack{
				"Song (feat. X)": {
					{RatingKey: "12", Title: "Song (feat. X)", Artist: "Drake"},
				},
			},
		}
		engine := NewEngine(index, 0, nil)

		got, err := engine.MatchTrack(ctx, "Drake", "Song (feat. X)")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.RatingKey != "12" {
			t.Errorf("expected track 12, got %+v", got)
		}
		want := []string{"Song", "Song (feat. X)"}
		if len(index.trackQueries) != 2 || index.trackQueries[0] != want[0] || index.trackQueries[1] != want[1] {
			t.Errorf("expected queries %v, got %v", want, index.trackQueries)
		}
	})

	t.Run("no re-search when cleaning left the title unchanged", func(t *testing.T) {
		index := &fakeIndex{}
		engine := NewEngine(index, 0, nil)

		if _, err := engine.MatchTrack(ctx, "Drake", "Song"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(index.trackQueries) != 1 {
			t.Errorf("expected a single track search, got queries %v", index.trackQueries)
		}
	})

	t.Run("artist fallback returns exact normalized title", func(t *testing.T) {
		index := &fakeIndex{
			artists: map[string][]models.LibraryArtist{
				"Drake": {
					{RatingKey: "a1", Name: "Drake"},
					{RatingKey: "a2", Name: "Metallica"},
				},
			},
			artistCatalog: map[string][]models.LibraryTrack{
				"a1": {
					{RatingKey: "20", Title: "Passionfruit", Artist: "Drake"},
					{RatingKey: "21", Title: "Gods Plan", Artist: "Drake"},
				},
				"a2": {
					{RatingKey: "30", Title: "God's Plan", Artist: "Metallica"},
				},
			},
		}
		engine := NewEngine(index, 0, nil)

		got, err := engine.MatchTrack(ctx, "Drake, Wizkid", "God's Plan")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.RatingKey != "21" {
			t.Errorf("expected track 21 from the first artist's catalog, got %+v", got)
		}
		if len(index.artistQueries) != 1 || index.artistQueries[0] != "Drake" {
			t.Errorf("expected a single artist search for the first listed artist, got %v", index.artistQueries)
		}
	})

	t.Run("artist fallback picks the best scoring title", func(t *testing.T) {
		index := &fakeIndex{
			artists: map[string][]models.LibraryArtist{
				"Drake": {{RatingKey: "a1", Name: "Drake"}},
			},
			artistCatalog: map[string][]models.LibraryTrack{
				"a1": {
					// Exactly 0.9 against the normalized title: excluded.
					{RatingKey: "40", Title: "abcdefghix", Artist: "Drake"},
					// Above 0.9: accepted.
					{RatingKey: "41", Title: "abcdefghijk", Artist: "Drake"},
				},
			},
		}
		engine := NewEngine(index, 0, nil)

		got, err := engine.MatchTrack(ctx, "Drake", "abcdefghij")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.RatingKey != "41" {
			t.Errorf("expected track 41, got %+v", got)
		}
	})

	t.Run("no match returns nil without error", func(t *testing.T) {
		index := &fakeIndex{}
		engine := NewEngine(index, 0, nil)

		got, err := engine.MatchTrack(ctx, "Drake", "Obscure B-Side")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil match, got %+v", got)
		}
	})

	t.Run("lookup failures are treated as empty results", func(t *testing.T) {
		index := &fakeIndex{
			trackErr:  errors.New("upstream unavailable"),
			artistErr: errors.New("upstream unavailable"),
		}
		engine := NewEngine(index, 0, nil)

		got, err := engine.MatchTrack(ctx, "Drake", "God's Plan")
		if err != nil {
			t.Fatalf("lookup failures should not surface as errors, got %v", err)
		}
		if got != nil {
			t.Errorf("expected nil match, got %+v", got)
		}
	})

	t.Run("context cancellation propagates", func(t *testing.T) {
		canceled, cancel := context.WithCancel(context.Background())
		cancel()

		engine := NewEngine(&fakeIndex{}, 0, nil)
		if _, err := engine.MatchTrack(canceled, "Drake", "Song"); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}
