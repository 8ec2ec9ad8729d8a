package services

import (
	"context"

	"github.com/NoNoBzH22/CineVault-Lite/internal/models"
)

// CatalogSource resolves external catalog URLs into playlist exports.
type CatalogSource interface {
	// ResolvePlaylist fetches the playlist (or single track) behind the URL
	// with all its tracks, in source order.
	ResolvePlaylist(ctx context.Context, url string) (*models.PlaylistExport, error)

	// Name returns the name of the catalog (e.g., "Spotify")
	Name() string
}

// Library is the media-server surface the sync pipeline runs against.
type Library interface {
	// MusicSection locates the music library section, probing the given
	// section names in order.
	MusicSection(ctx context.Context, names []string) (*models.LibrarySection, error)

	// SearchTracks searches the section for tracks matching the query.
	SearchTracks(ctx context.Context, section models.LibrarySection, query string, limit int) ([]models.LibraryTrack, error)

	// SearchArtists searches the section for artists matching the query.
	SearchArtists(ctx context.Context, section models.LibrarySection, query string, limit int) ([]models.LibraryArtist, error)

	// ArtistTracks returns every track belonging to the artist.
	ArtistTracks(ctx context.Context, artist models.LibraryArtist) ([]models.LibraryTrack, error)

	// FindPlaylist returns the first playlist with the given name, or nil
	// when none exists.
	FindPlaylist(ctx context.Context, name string) (*models.LibraryPlaylist, error)

	// DeletePlaylist removes a playlist from the server.
	DeletePlaylist(ctx context.Context, playlist models.LibraryPlaylist) error

	// CreatePlaylist creates a playlist holding the given tracks, in order.
	CreatePlaylist(ctx context.Context, name string, section models.LibrarySection, tracks []models.LibraryTrack) (*models.LibraryPlaylist, error)

	// Name returns the name of the server (e.g., "Plex")
	Name() string
}

// UserSwitcher lists server accounts and produces per-user library
// connections.
type UserSwitcher interface {
	// ListUsers returns the selectable sync targets, the admin account first.
	ListUsers(ctx context.Context) ([]models.LibraryUser, error)

	// SwitchUser returns a Library scoped to the given user. The admin
	// library is returned for the "main" sentinel, an empty ID, or when the
	// user connection cannot be established.
	SwitchUser(ctx context.Context, userID string) (Library, error)
}
