package tasks

import (
	"fmt"

	"github.com/NoNoBzH22/CineVault-Lite/internal/formatter"
	"github.com/NoNoBzH22/CineVault-Lite/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchSource Phase = iota
	RenderArtifact
	LocateLibrary
	MatchTracks
	CommitPlaylist
)

func (p Phase) String() string {
	switch p {
	case FetchSource:
		return "fetch_source"
	case RenderArtifact:
		return "render_artifact"
	case LocateLibrary:
		return "locate_library"
	case MatchTracks:
		return "match_tracks"
	case CommitPlaylist:
		return "commit_playlist"
	default:
		return ""
	}
}

func fetchingSourceUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching playlist from %s...", name),
	}
}

func foundPlaylistUpdate(export *models.PlaylistExport) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found playlist: %s (%d tracks)", export.Playlist.Name, len(export.Tracks)),
		Data:    export,
	}
}

func renderArtifactUpdate(entries int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RenderArtifact,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Rendered M3U artifact (%d entries)", entries),
	}
}

func locateLibraryUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   LocateLibrary,
		Step:    1,
		Total:   1,
		Message: "Locating music library...",
	}
}

func sectionFoundUpdate(section *models.LibrarySection) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LocateLibrary,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Using library section: %s", section.Title),
		Data:    section,
	}
}

func matchTrackUpdate(step, total int, entry formatter.Entry) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MatchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s - %s", step, total, entry.Artist, entry.Title),
	}
}

func commitPlaylistUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CommitPlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Creating playlist: %s", name),
	}
}

func playlistCreatedUpdate(playlist *models.LibraryPlaylist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CommitPlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Playlist created: %s (%d items)", playlist.Name, playlist.ItemCount),
		Data:    playlist,
	}
}
