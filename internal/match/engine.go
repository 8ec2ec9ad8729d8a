package match

import (
	"context"
	"strings"

	"github.com/NoNoBzH22/CineVault-Lite/internal/models"
	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

const (
	trackSearchLimit  = 10
	artistSearchLimit = 5
)

// LibraryIndex is the narrow, queryable library surface the engine matches
// against. Implementations are expected to be scoped to a single music
// section.
type LibraryIndex interface {
	// SearchTracks returns up to limit tracks matching the query text.
	SearchTracks(ctx context.Context, query string, limit int) ([]models.LibraryTrack, error)

	// SearchArtists returns up to limit artists matching the query text.
	SearchArtists(ctx context.Context, query string, limit int) ([]models.LibraryArtist, error)

	// ArtistTracks returns every track belonging to the given artist.
	ArtistTracks(ctx context.Context, artist models.LibraryArtist) ([]models.LibraryTrack, error)
}

// Engine matches catalog tracks against a library index using the tiered
// fallback chain. Library lookups are throttled because the index is a
// rate-sensitive network service.
type Engine struct {
	index   LibraryIndex
	limiter *rate.Limiter
	logger  *log.Logger
}

// NewEngine creates a match engine over the given index.
//
// searchRate caps library requests per second; zero or negative disables
// throttling. The logger may be nil.
func NewEngine(index LibraryIndex, searchRate float64, logger *log.Logger) *Engine {
	var limiter *rate.Limiter
	if searchRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(searchRate), 1)
	}
	return &Engine{index: index, limiter: limiter, logger: logger}
}

// MatchTrack finds the library track for an external (artist, title) pair, or
// nil when no tier produces a confident match. An unmatched track is not an
// error; the returned error is non-nil only when the context is done.
//
// Tiers, short-circuiting at first success:
//  1. search by cleaned title; per candidate, artist match wins immediately,
//     else raw-title similarity above TitleRatioThreshold wins.
//  2. same, searching by the raw title — only when the cleaned-title search
//     returned no results at all and cleaning changed the title.
//  3. artist fallback: collect all tracks of artists matching the first
//     candidate artist; exact normalized title equality returns immediately,
//     else the best candidate scoring above TitleRatioThreshold.
func (e *Engine) MatchTrack(ctx context.Context, artist, title string) (*models.LibraryTrack, error) {
	clean := CleanTitle(title)

	candidates, err := e.searchTracks(ctx, clean)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 && clean != title {
		candidates, err = e.searchTracks(ctx, title)
		if err != nil {
			return nil, err
		}
	}

	for i := range candidates {
		if ArtistsMatch(artist, candidates[i].Artist) {
			return &candidates[i], nil
		}
		if TitleSimilarity(title, candidates[i].Title) > TitleRatioThreshold {
			return &candidates[i], nil
		}
	}

	return e.artistFallback(ctx, artist, title)
}

// artistFallback searches by artist, gathers all their tracks and compares
// titles manually.
func (e *Engine) artistFallback(ctx context.Context, artist, title string) (*models.LibraryTrack, error) {
	mainArtist := strings.TrimSpace(SplitArtists(artist)[0])

	artists, err := e.searchArtists(ctx, mainArtist)
	if err != nil {
		return nil, err
	}

	var pool []models.LibraryTrack
	for _, candidate := range artists {
		if !ArtistsMatch(mainArtist, candidate.Name) {
			continue
		}
		tracks, err := e.artistTracks(ctx, candidate)
		if err != nil {
			return nil, err
		}
		pool = append(pool, tracks...)
	}

	normTitle := Normalize(title)

	var best *models.LibraryTrack
	highest := 0.0
	for i := range pool {
		normCandidate := Normalize(pool[i].Title)

		if normTitle == normCandidate {
			return &pool[i], nil
		}

		score := Ratio(normTitle, normCandidate)
		if score > TitleRatioThreshold && score > highest {
			highest = score
			best = &pool[i]
		}
	}

	return best, nil
}

// wait blocks on the rate limiter when one is configured.
func (e *Engine) wait(ctx context.Context) error {
	if e.limiter == nil {
		return ctx.Err()
	}
	return e.limiter.Wait(ctx)
}

// searchTracks queries the index, treating lookup failures as empty results.
// Only context cancellation propagates.
func (e *Engine) searchTracks(ctx context.Context, query string) ([]models.LibraryTrack, error) {
	if err := e.wait(ctx); err != nil {
		return nil, err
	}

	tracks, err := e.index.SearchTracks(ctx, query, trackSearchLimit)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if e.logger != nil {
			e.logger.Debug("track search failed", "query", query, "err", err)
		}
		return nil, nil
	}

	return tracks, nil
}

func (e *Engine) searchArtists(ctx context.Context, query string) ([]models.LibraryArtist, error) {
	if err := e.wait(ctx); err != nil {
		return nil, err
	}

	artists, err := e.index.SearchArtists(ctx, query, artistSearchLimit)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if e.logger != nil {
			e.logger.Debug("artist search failed", "query", query, "err", err)
		}
		return nil, nil
	}

	return artists, nil
}

func (e *Engine) artistTracks(ctx context.Context, artist models.LibraryArtist) ([]models.LibraryTrack, error) {
	if err := e.wait(ctx); err != nil {
		return nil, err
	}

	tracks, err := e.index.ArtistTracks(ctx, artist)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if e.logger != nil {
			e.logger.Debug("artist track listing failed", "artist", artist.Name, "err", err)
		}
		return nil, nil
	}

	return tracks, nil
}
