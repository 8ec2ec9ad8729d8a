package models

// LibrarySection identifies a media-server library section (e.g. "Music").
type LibrarySection struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// LibraryTrack is a track entry in the local media library. The RatingKey is
// the identity used for playlist insertion; Artist may be empty when the
// server has no artist hierarchy for the item.
type LibraryTrack struct {
	RatingKey string `json:"rating_key"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
}

// LibraryArtist is an artist entry in the local media library.
type LibraryArtist struct {
	RatingKey string `json:"rating_key"`
	Name      string `json:"name"`
}

// LibraryPlaylist is a playlist entry in the local media library.
type LibraryPlaylist struct {
	RatingKey string `json:"rating_key"`
	Name      string `json:"name"`
	ItemCount int    `json:"item_count"`
}

// LibraryUser is a media-server account usable as a sync target.
type LibraryUser struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
