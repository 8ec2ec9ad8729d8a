// Package services defines the [CatalogSource] and [Library] interfaces for
// the remote music catalog and the local media server, and implements them
// for Spotify and Plex.
//
// # Catalog Source
//
// [SpotifyService] resolves public playlist and track URLs using the OAuth2
// client-credentials flow. No user login is involved; only catalog reads are
// performed. Large playlists are fetched transparently across pages.
//
// # Library
//
// [PlexClient] talks to a Plex Media Server over its JSON API. All requests
// carry the X-Plex-Token header. The client exposes the narrow surface the
// sync pipeline needs: locating the music section, searching tracks and
// artists, listing an artist's tracks and managing playlists.
//
// # Home Users
//
// [PlexClient] also implements [UserSwitcher]. Listing home users and
// switching to a managed user go through plex.tv and are best effort: when
// the account has no home or the switch fails, operations fall back to the
// admin connection.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrMissingCredentials] : required credentials absent
//   - [shared.ErrInvalidCredentials] : upstream rejected the credentials
//   - [shared.ErrUnsupportedURL] : URL is neither a playlist nor a track
//   - [shared.ErrAPIRequest] : HTTP request failed
//   - [shared.ErrPlaylistNotFound] : playlist ID not found upstream
//   - [shared.ErrLibraryNotFound] : no music section on the server
package services
