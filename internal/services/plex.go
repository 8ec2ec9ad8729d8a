// Plex Media Server implementation of [Library] and [UserSwitcher]
//
// Endpoints follow https://plexapi.dev; all responses are requested as JSON.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NoNoBzH22/CineVault-Lite/internal/models"
	"github.com/NoNoBzH22/CineVault-Lite/internal/shared"
	"github.com/charmbracelet/log"
)

const defaultPlexTVURL = "https://plex.tv"

const (
	plexTypeArtist = 8
	plexTypeTrack  = 10
)

type plexDirectory struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

type plexMetadata struct {
	RatingKey        string `json:"ratingKey"`
	Title            string `json:"title"`
	GrandparentTitle string `json:"grandparentTitle"`
	LeafCount        int    `json:"leafCount"`
}

type plexContainer struct {
	MediaContainer struct {
		MachineIdentifier string          `json:"machineIdentifier"`
		Directory         []plexDirectory `json:"Directory"`
		Metadata          []plexMetadata  `json:"Metadata"`
	} `json:"MediaContainer"`
}

type plexHomeUser struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type plexHome struct {
	Users []plexHomeUser `json:"users"`
}

type plexSwitchResponse struct {
	AuthToken string `json:"authToken"`
}

// PlexClient implements [Library] and [UserSwitcher] against a Plex Media
// Server. Requests authenticate with the X-Plex-Token header and ask for
// JSON responses.
type PlexClient struct {
	baseURL    string
	plexTVURL  string
	token      string
	httpClient *http.Client
	logger     *log.Logger

	machineID string
}

// NewPlexClient creates a Plex client for the given server URL and token.
// The logger may be nil.
func NewPlexClient(baseURL, token string, logger *log.Logger) (*PlexClient, error) {
	if baseURL == "" || token == "" {
		return nil, fmt.Errorf("%w: plex url and token are required", shared.ErrMissingCredentials)
	}

	return &PlexClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		plexTVURL:  defaultPlexTVURL,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}, nil
}

func (p *PlexClient) Name() string {
	return "Plex"
}

// doRequest performs an authenticated request against the given base URL and
// decodes the JSON response into result when non-nil.
func (p *PlexClient) doRequest(ctx context.Context, method, base, endpoint, token string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, base+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Plex-Token", token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: plex returned status 401", shared.ErrInvalidCredentials)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: plex returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// serverRequest performs a request against the media server itself.
func (p *PlexClient) serverRequest(ctx context.Context, method, endpoint string, result interface{}) error {
	return p.doRequest(ctx, method, p.baseURL, endpoint, p.token, result)
}

// MusicSection locates the music section, trying the configured names in
// order against the server's section list.
func (p *PlexClient) MusicSection(ctx context.Context, names []string) (*models.LibrarySection, error) {
	var container plexContainer
	if err := p.serverRequest(ctx, http.MethodGet, "/library/sections", &container); err != nil {
		return nil, err
	}

	for _, name := range names {
		for _, dir := range container.MediaContainer.Directory {
			if dir.Title == name && dir.Type == "artist" {
				return &models.LibrarySection{Key: dir.Key, Title: dir.Title}, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: no section named %s", shared.ErrLibraryNotFound, strings.Join(names, ", "))
}

// SearchTracks searches the section for tracks matching the query.
func (p *PlexClient) SearchTracks(ctx context.Context, section models.LibrarySection, query string, limit int) ([]models.LibraryTrack, error) {
	endpoint := fmt.Sprintf("/library/sections/%s/search?type=%d&query=%s&limit=%d",
		section.Key, plexTypeTrack, url.QueryEscape(query), limit)

	var container plexContainer
	if err := p.serverRequest(ctx, http.MethodGet, endpoint, &container); err != nil {
		return nil, err
	}

	return convertTracks(container.MediaContainer.Metadata), nil
}

// SearchArtists searches the section for artists matching the query.
func (p *PlexClient) SearchArtists(ctx context.Context, section models.LibrarySection, query string, limit int) ([]models.LibraryArtist, error) {
	endpoint := fmt.Sprintf("/library/sections/%s/search?type=%d&query=%s&limit=%d",
		section.Key, plexTypeArtist, url.QueryEscape(query), limit)

	var container plexContainer
	if err := p.serverRequest(ctx, http.MethodGet, endpoint, &container); err != nil {
		return nil, err
	}

	artists := make([]models.LibraryArtist, 0, len(container.MediaContainer.Metadata))
	for _, m := range container.MediaContainer.Metadata {
		artists = append(artists, models.LibraryArtist{RatingKey: m.RatingKey, Name: m.Title})
	}
	return artists, nil
}

// ArtistTracks returns every track under the artist via the allLeaves view.
func (p *PlexClient) ArtistTracks(ctx context.Context, artist models.LibraryArtist) ([]models.LibraryTrack, error) {
	endpoint := fmt.Sprintf("/library/metadata/%s/allLeaves", artist.RatingKey)

	var container plexContainer
	if err := p.serverRequest(ctx, http.MethodGet, endpoint, &container); err != nil {
		return nil, err
	}

	return convertTracks(container.MediaContainer.Metadata), nil
}

// FindPlaylist returns the first playlist with the given name, or nil when
// the server has none.
func (p *PlexClient) FindPlaylist(ctx context.Context, name string) (*models.LibraryPlaylist, error) {
	var container plexContainer
	if err := p.serverRequest(ctx, http.MethodGet, "/playlists", &container); err != nil {
		return nil, err
	}

	for _, m := range container.MediaContainer.Metadata {
		if m.Title == name {
			return &models.LibraryPlaylist{RatingKey: m.RatingKey, Name: m.Title, ItemCount: m.LeafCount}, nil
		}
	}

	return nil, nil
}

// DeletePlaylist removes a playlist from the server.
func (p *PlexClient) DeletePlaylist(ctx context.Context, playlist models.LibraryPlaylist) error {
	endpoint := fmt.Sprintf("/playlists/%s", playlist.RatingKey)
	return p.serverRequest(ctx, http.MethodDelete, endpoint, nil)
}

// CreatePlaylist creates an audio playlist holding the given tracks, in
// order, using the server's machine identifier URI scheme.
func (p *PlexClient) CreatePlaylist(ctx context.Context, name string, section models.LibrarySection, tracks []models.LibraryTrack) (*models.LibraryPlaylist, error) {
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: cannot create an empty playlist", shared.ErrInvalidInput)
	}

	machineID, err := p.machineIdentifier(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(tracks))
	for i, track := range tracks {
		keys[i] = track.RatingKey
	}
	uri := fmt.Sprintf("server://%s/com.plexapp.plugins.library/library/metadata/%s",
		machineID, strings.Join(keys, ","))

	endpoint := fmt.Sprintf("/playlists?type=audio&smart=0&title=%s&uri=%s",
		url.QueryEscape(name), url.QueryEscape(uri))

	var container plexContainer
	if err := p.serverRequest(ctx, http.MethodPost, endpoint, &container); err != nil {
		return nil, err
	}

	if len(container.MediaContainer.Metadata) == 0 {
		return &models.LibraryPlaylist{Name: name, ItemCount: len(tracks)}, nil
	}
	m := container.MediaContainer.Metadata[0]
	return &models.LibraryPlaylist{RatingKey: m.RatingKey, Name: m.Title, ItemCount: m.LeafCount}, nil
}

// machineIdentifier fetches and caches the server's machine identifier.
func (p *PlexClient) machineIdentifier(ctx context.Context) (string, error) {
	if p.machineID != "" {
		return p.machineID, nil
	}

	var container plexContainer
	if err := p.serverRequest(ctx, http.MethodGet, "/", &container); err != nil {
		return "", err
	}

	p.machineID = container.MediaContainer.MachineIdentifier
	return p.machineID, nil
}

// ListUsers returns the selectable sync targets. The admin account is always
// first; home users from plex.tv are appended best effort, so a standalone
// server still lists its single account.
func (p *PlexClient) ListUsers(ctx context.Context) ([]models.LibraryUser, error) {
	users := []models.LibraryUser{{ID: "main", Title: "Main Account (Admin)"}}

	var home plexHome
	if err := p.doRequest(ctx, http.MethodGet, p.plexTVURL, "/api/v2/home/users", p.token, &home); err != nil {
		if p.logger != nil {
			p.logger.Debug("home user listing failed", "err", err)
		}
		return users, nil
	}

	for _, u := range home.Users {
		users = append(users, models.LibraryUser{ID: fmt.Sprintf("%d", u.ID), Title: u.Title})
	}

	return users, nil
}

// SwitchUser returns a Library connected as the given home user. The admin
// connection is returned for the "main" sentinel and for an empty ID, and as
// a fallback when the user token cannot be obtained.
func (p *PlexClient) SwitchUser(ctx context.Context, userID string) (Library, error) {
	if userID == "" || userID == "main" {
		return p, nil
	}

	endpoint := fmt.Sprintf("/api/v2/home/users/%s/switch", url.PathEscape(userID))

	var switched plexSwitchResponse
	if err := p.doRequest(ctx, http.MethodPost, p.plexTVURL, endpoint, p.token, &switched); err != nil || switched.AuthToken == "" {
		if p.logger != nil {
			p.logger.Warn("user switch failed, using admin connection", "user", userID, "err", err)
		}
		return p, nil
	}

	client := *p
	client.token = switched.AuthToken
	client.machineID = ""
	return &client, nil
}

func convertTracks(metadata []plexMetadata) []models.LibraryTrack {
	tracks := make([]models.LibraryTrack, 0, len(metadata))
	for _, m := range metadata {
		tracks = append(tracks, models.LibraryTrack{
			RatingKey: m.RatingKey,
			Title:     m.Title,
			Artist:    m.GrandparentTitle,
		})
	}
	return tracks
}
