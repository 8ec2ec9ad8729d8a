// Spotify API implementation of [CatalogSource]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/NoNoBzH22/CineVault-Lite/internal/models"
	"github.com/NoNoBzH22/CineVault-Lite/internal/shared"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Artists     []SpotifyArtist `json:"artists"`
	Album       SpotifyAlbum    `json:"album"`
	TrackNumber int             `json:"track_number"`
	DiscNumber  int             `json:"disc_number"`
	DurationMS  int             `json:"duration_ms"`
}

// SpotifyPlaylistItem represents a track within a playlist context. Track is
// nil for entries the catalog can no longer resolve.
type SpotifyPlaylistItem struct {
	AddedAt string        `json:"added_at"`
	Track   *SpotifyTrack `json:"track"`
}

// SpotifyTrackPage represents one page of playlist tracks. Next holds the
// absolute URL of the following page, or null on the last one.
type SpotifyTrackPage struct {
	Items []SpotifyPlaylistItem `json:"items"`
	Total int                   `json:"total"`
	Next  *string               `json:"next"`
}

// SpotifyPlaylist represents a Spotify playlist with its first page of tracks.
type SpotifyPlaylist struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Tracks SpotifyTrackPage `json:"tracks"`
}

// SpotifyService implements [CatalogSource] for the Spotify Web API. Uses the
// [clientcredentials] flow: tokens are acquired and refreshed automatically,
// no user login is involved.
type SpotifyService struct {
	config     *clientcredentials.Config
	httpClient *http.Client
	baseURL    string
}

// NewSpotifyService creates a Spotify catalog source from application
// credentials.
func NewSpotifyService(clientID, clientSecret string) (*SpotifyService, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client_id and client_secret are required", shared.ErrMissingCredentials)
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyTokenURL,
	}

	return &SpotifyService{
		config:  config,
		baseURL: spotifyBaseURL,
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// ClassifyURL extracts the resource kind and ID from a Spotify URL. Supported
// forms contain a "playlist/" or "track/" segment; anything after "?" is
// dropped.
func ClassifyURL(rawURL string) (kind, id string, err error) {
	for _, k := range []string{"playlist", "track"} {
		marker := k + "/"
		if !strings.Contains(rawURL, marker) {
			continue
		}
		rest := rawURL[strings.LastIndex(rawURL, marker)+len(marker):]
		id, _, _ = strings.Cut(rest, "?")
		return k, id, nil
	}
	return "", "", fmt.Errorf("%w: %s", shared.ErrUnsupportedURL, rawURL)
}

// client returns the token-refreshing HTTP client, building it on first use.
func (s *SpotifyService) client(ctx context.Context) *http.Client {
	if s.httpClient == nil {
		s.httpClient = s.config.Client(ctx)
	}
	return s.httpClient
}

// doRequest performs an authenticated GET against the Spotify API. endpoint
// may be a path relative to the API base or an absolute pagination URL.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, result interface{}) error {
	apiURL := endpoint
	if !strings.HasPrefix(endpoint, "http") {
		apiURL = s.baseURL + endpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client(ctx).Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: spotify returned status %d", shared.ErrInvalidCredentials, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: spotify returned status 404", shared.ErrPlaylistNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: spotify returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Playlist retrieves a playlist by ID, first page of tracks included.
func (s *SpotifyService) Playlist(ctx context.Context, playlistID string) (*SpotifyPlaylist, error) {
	var playlist SpotifyPlaylist
	endpoint := fmt.Sprintf("/playlists/%s", playlistID)
	if err := s.doRequest(ctx, endpoint, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// Track retrieves a single track by ID.
func (s *SpotifyService) Track(ctx context.Context, trackID string) (*SpotifyTrack, error) {
	var track SpotifyTrack
	endpoint := fmt.Sprintf("/tracks/%s", trackID)
	if err := s.doRequest(ctx, endpoint, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// ResolvePlaylist fetches the playlist or track behind a Spotify URL as a
// [models.PlaylistExport]. Playlist pages are followed until exhausted;
// entries whose track is null are skipped. A track URL yields a single-track
// export named after the track.
func (s *SpotifyService) ResolvePlaylist(ctx context.Context, rawURL string) (*models.PlaylistExport, error) {
	kind, id, err := ClassifyURL(rawURL)
	if err != nil {
		return nil, err
	}

	if kind == "track" {
		track, err := s.Track(ctx, id)
		if err != nil {
			return nil, err
		}
		export := &models.PlaylistExport{
			Playlist: models.Playlist{ID: track.ID, Name: track.Name, TrackCount: 1},
			Tracks:   []models.Track{convertTrack(*track)},
		}
		return export, nil
	}

	playlist, err := s.Playlist(ctx, id)
	if err != nil {
		return nil, err
	}

	var tracks []models.Track
	page := playlist.Tracks
	for {
		for _, item := range page.Items {
			if item.Track == nil {
				continue
			}
			tracks = append(tracks, convertTrack(*item.Track))
		}

		if page.Next == nil {
			break
		}

		var next SpotifyTrackPage
		if err := s.doRequest(ctx, *page.Next, &next); err != nil {
			return nil, err
		}
		page = next
	}

	return &models.PlaylistExport{
		Playlist: models.Playlist{
			ID:         playlist.ID,
			Name:       playlist.Name,
			TrackCount: len(tracks),
		},
		Tracks: tracks,
	}, nil
}

func convertTrack(t SpotifyTrack) models.Track {
	track := models.Track{
		ID:          t.ID,
		Title:       t.Name,
		Album:       t.Album.Name,
		ReleaseDate: t.Album.ReleaseDate,
		TrackNumber: t.TrackNumber,
		DiscNumber:  t.DiscNumber,
		DurationMS:  t.DurationMS,
	}
	for _, artist := range t.Artists {
		track.Artists = append(track.Artists, artist.Name)
	}
	return track
}
