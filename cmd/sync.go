package main

import (
	"context"

	"github.com/NoNoBzH22/CineVault-Lite/internal/tasks"
	"github.com/urfave/cli/v3"
)

// SyncRun runs a full Spotify → Plex playlist sync.
func (r *Runner) SyncRun(ctx context.Context, cmd *cli.Command) error {
	opts := tasks.SyncOptions{
		URL:          cmd.String("url"),
		PlaylistName: cmd.String("name"),
		UserID:       cmd.String("user"),
	}

	r.logger.Info("starting sync", "url", opts.URL, "name", opts.PlaylistName, "user", opts.UserID)
	r.writePlain("Starting playlist sync...\n")
	r.writePlain("Source: %s\n", opts.URL)
	r.writePlain("Target playlist: %s\n\n", opts.PlaylistName)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchSource:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.RenderArtifact:
				r.writePlain("📄 %s\n", update.Message)
			case tasks.LocateLibrary:
				r.writePlain("🔍 %s\n", update.Message)
			case tasks.MatchTracks:
				if update.Step == 1 {
					r.writePlain("\n")
				}
				r.writePlain("   %s\n", update.Message)
			case tasks.CommitPlaylist:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.Run(ctx, progressCh, opts)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Sync Complete!")
	r.writePlain("Source: %s (%d tracks)\n", result.SourcePlaylist.Playlist.Name, result.TotalTracks)
	r.writePlain("%s\n", result.Summary)

	if len(result.Missing) > 0 {
		r.writePlain("\nTracks not found on Plex:\n")
		for _, line := range result.Missing {
			r.writePlain("  %s\n", line)
		}
	}

	return nil
}
