package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// M3U renders the handoff document for a playlist without touching Plex.
func (r *Runner) M3U(ctx context.Context, cmd *cli.Command) error {
	url := cmd.String("url")
	outputPath := cmd.String("output")

	r.logger.Info("rendering M3U document", "url", url)

	export, artifact, err := r.engine.Artifact(ctx, url)
	if err != nil {
		return err
	}

	if outputPath == "" {
		if _, err := r.output.Write(artifact); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		r.writePlain("\n")
		return nil
	}

	if err := os.WriteFile(outputPath, artifact, 0644); err != nil {
		return fmt.Errorf("failed to write M3U file: %w", err)
	}

	r.writePlain("✓ M3U document written to %s\n", outputPath)
	r.writePlain("  Playlist: %s (%d tracks)\n", export.Playlist.Name, len(export.Tracks))

	return nil
}
