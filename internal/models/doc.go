// Package models defines the data model for the Spotify → Plex bridge:
// catalog tracks and playlists as fetched from Spotify, and the persisted
// snapshot entity used by the local cache.
package models
