package tasks

import (
	"context"
	"fmt"

	"github.com/NoNoBzH22/CineVault-Lite/internal/formatter"
	"github.com/NoNoBzH22/CineVault-Lite/internal/match"
	"github.com/NoNoBzH22/CineVault-Lite/internal/models"
	"github.com/NoNoBzH22/CineVault-Lite/internal/services"
	"github.com/NoNoBzH22/CineVault-Lite/internal/shared"
	"github.com/charmbracelet/log"
)

// SyncOptions carries the parameters of one sync run.
type SyncOptions struct {
	URL          string // Source catalog URL (playlist or track)
	PlaylistName string // Target playlist name on the media server
	UserID       string // Optional target user; "main" or empty means admin
}

// TrackMatchResult represents the result of matching a single artifact entry.
type TrackMatchResult struct {
	Entry   formatter.Entry      // (artist, title) pair from the artifact
	Matched *models.LibraryTrack // Matched library track (nil if not found)
}

// SyncRunResult contains all data from a full sync run.
type SyncRunResult struct {
	SourcePlaylist *models.PlaylistExport // Resolved source playlist with tracks
	Artifact       []byte                 // Rendered M3U handoff document
	Playlist       *models.LibraryPlaylist
	TrackMatches   []TrackMatchResult
	MatchedCount   int
	TotalTracks    int
	Missing        []string // Display lines for unmatched entries
	Summary        string
}

// SyncEngine defines operations for syncing catalog playlists to the library.
type SyncEngine interface {
	// Run performs a full sync: fetch, render, match, commit.
	Run(ctx context.Context, progress chan<- ProgressUpdate, opts SyncOptions) (*SyncRunResult, error)

	// Artifact resolves a catalog URL and renders its M3U document without
	// touching the library.
	Artifact(ctx context.Context, url string) (*models.PlaylistExport, []byte, error)

	// Users lists the media-server accounts selectable as sync targets.
	Users(ctx context.Context) ([]models.LibraryUser, error)
}

// SnapshotRecorder persists fetched playlist payloads.
type SnapshotRecorder interface {
	Create(snapshot *models.PersistedSnapshot) error
}

// PlaylistEngine implements [SyncEngine] over a catalog source and a media
// library connection.
type PlaylistEngine struct {
	catalog   services.CatalogSource
	library   services.Library
	switcher  services.UserSwitcher
	snapshots SnapshotRecorder
	config    *shared.Config
	logger    *log.Logger
}

// NewPlaylistEngine creates a sync engine. switcher and snapshots may be nil;
// the logger may be nil.
func NewPlaylistEngine(catalog services.CatalogSource, library services.Library, switcher services.UserSwitcher, snapshots SnapshotRecorder, config *shared.Config, logger *log.Logger) *PlaylistEngine {
	if config == nil {
		config = shared.DefaultConfig()
	}
	return &PlaylistEngine{
		catalog:   catalog,
		library:   library,
		switcher:  switcher,
		snapshots: snapshots,
		config:    config,
		logger:    logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *PlaylistEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// sectionIndex scopes a library connection to one section so the match
// engine can query it.
type sectionIndex struct {
	library services.Library
	section models.LibrarySection
}

func (s sectionIndex) SearchTracks(ctx context.Context, query string, limit int) ([]models.LibraryTrack, error) {
	return s.library.SearchTracks(ctx, s.section, query, limit)
}

func (s sectionIndex) SearchArtists(ctx context.Context, query string, limit int) ([]models.LibraryArtist, error) {
	return s.library.SearchArtists(ctx, s.section, query, limit)
}

func (s sectionIndex) ArtistTracks(ctx context.Context, artist models.LibraryArtist) ([]models.LibraryTrack, error) {
	return s.library.ArtistTracks(ctx, artist)
}

// fetchExport resolves the catalog URL and records a snapshot best effort.
func (e *PlaylistEngine) fetchExport(ctx context.Context, url string) (*models.PlaylistExport, error) {
	export, err := e.catalog.ResolvePlaylist(ctx, url)
	if err != nil {
		return nil, err
	}

	if e.snapshots != nil {
		payload, err := shared.MarshalJSON(export, false)
		if err == nil {
			snapshot := models.NewPersistedSnapshot(0, url, export.Playlist.Name, len(export.Tracks), string(payload))
			err = e.snapshots.Create(snapshot)
		}
		if err != nil && e.logger != nil {
			e.logger.Warn("snapshot recording failed", "url", url, "err", err)
		}
	}

	return export, nil
}

// Artifact resolves a catalog URL into its playlist export and the rendered
// M3U document.
func (e *PlaylistEngine) Artifact(ctx context.Context, url string) (*models.PlaylistExport, []byte, error) {
	if e.catalog == nil {
		return nil, nil, fmt.Errorf("%w: catalog source not initialized", shared.ErrServiceUnavailable)
	}

	export, err := e.fetchExport(ctx, url)
	if err != nil {
		return nil, nil, err
	}

	return export, formatter.RenderM3U(export, e.pathTemplate()), nil
}

// Users lists the selectable sync targets.
func (e *PlaylistEngine) Users(ctx context.Context) ([]models.LibraryUser, error) {
	if e.switcher == nil {
		return nil, fmt.Errorf("%w: media server not initialized", shared.ErrServiceUnavailable)
	}
	return e.switcher.ListUsers(ctx)
}

// Run performs a full catalog → library playlist sync.
//
// An unmatched track is not a failure; the run succeeds whenever the
// pipeline completes, reporting matched/total counts. When nothing matches,
// no playlist is created or replaced. Deleting an existing playlist of the
// same name is part of the commit: its failure aborts the run before the
// stale playlist is lost.
func (e *PlaylistEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, opts SyncOptions) (*SyncRunResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog source not initialized", shared.ErrServiceUnavailable)
	}
	if e.library == nil {
		return nil, fmt.Errorf("%w: media server not initialized", shared.ErrServiceUnavailable)
	}
	if opts.URL == "" {
		return nil, fmt.Errorf("%w: source URL is required", shared.ErrMissingArgument)
	}
	if opts.PlaylistName == "" {
		return nil, fmt.Errorf("%w: playlist name is required", shared.ErrMissingArgument)
	}

	result := &SyncRunResult{}

	e.sendProgress(progress, fetchingSourceUpdate(e.catalog.Name()))

	export, err := e.fetchExport(ctx, opts.URL)
	if err != nil {
		return nil, err
	}
	result.SourcePlaylist = export
	e.sendProgress(progress, foundPlaylistUpdate(export))

	artifact := formatter.RenderM3U(export, e.pathTemplate())
	_, entries := formatter.ParseM3U(artifact)
	result.Artifact = artifact
	result.TotalTracks = len(entries)
	e.sendProgress(progress, renderArtifactUpdate(len(entries)))

	library := e.library
	if e.switcher != nil && opts.UserID != "" && opts.UserID != "main" {
		library, err = e.switcher.SwitchUser(ctx, opts.UserID)
		if err != nil {
			return nil, err
		}
	}

	e.sendProgress(progress, locateLibraryUpdate())
	section, err := library.MusicSection(ctx, e.sectionNames())
	if err != nil {
		return nil, err
	}
	e.sendProgress(progress, sectionFoundUpdate(section))

	engine := match.NewEngine(sectionIndex{library: library, section: *section}, e.config.Library.SearchRate, e.logger)

	matches := make([]TrackMatchResult, len(entries))
	var found []models.LibraryTrack

	for i, entry := range entries {
		e.sendProgress(progress, matchTrackUpdate(i+1, len(entries), entry))

		track, err := engine.MatchTrack(ctx, entry.Artist, entry.Title)
		if err != nil {
			return nil, err
		}

		matches[i] = TrackMatchResult{Entry: entry, Matched: track}
		if track != nil {
			found = append(found, *track)
		} else {
			result.Missing = append(result.Missing, fmt.Sprintf("❌ '%s' (%s)", entry.Title, entry.Artist))
		}
	}

	result.TrackMatches = matches
	result.MatchedCount = len(found)

	if len(found) > 0 {
		e.sendProgress(progress, commitPlaylistUpdate(opts.PlaylistName))

		existing, err := library.FindPlaylist(ctx, opts.PlaylistName)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to look up existing playlist: %v", shared.ErrCommitFailed, err)
		}
		if existing != nil {
			if err := library.DeletePlaylist(ctx, *existing); err != nil {
				return nil, fmt.Errorf("%w: failed to replace existing playlist: %v", shared.ErrCommitFailed, err)
			}
		}

		playlist, err := library.CreatePlaylist(ctx, opts.PlaylistName, *section, found)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to create playlist: %v", shared.ErrCommitFailed, err)
		}
		result.Playlist = playlist
		e.sendProgress(progress, playlistCreatedUpdate(playlist))
	}

	result.Summary = fmt.Sprintf("Playlist created: %d/%d tracks matched.", result.MatchedCount, result.TotalTracks)
	return result, nil
}

func (e *PlaylistEngine) pathTemplate() string {
	if e.config.Library.PathTemplate != "" {
		return e.config.Library.PathTemplate
	}
	return formatter.DefaultPathTemplate
}

func (e *PlaylistEngine) sectionNames() []string {
	if len(e.config.Library.SectionNames) > 0 {
		return e.config.Library.SectionNames
	}
	return []string{"Music", "Musique", "Musik", "Música"}
}
