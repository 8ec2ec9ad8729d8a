package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/NoNoBzH22/CineVault-Lite/internal/shared"
	"github.com/urfave/cli/v3"
)

// CacheList lists persisted playlist snapshots, newest first per URL order.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	if r.snapshots == nil {
		return fmt.Errorf("%w: snapshot database not initialized", shared.ErrServiceUnavailable)
	}

	criteria := map[string]any{}
	if url := cmd.String("url"); url != "" {
		criteria["source_url"] = url
	}

	snapshots, err := r.snapshots.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	if len(snapshots) == 0 {
		r.writePlain("No cached snapshots.\n")
		return nil
	}

	r.writePlainHeader("Cached Snapshots")
	for _, snapshot := range snapshots {
		r.writePlain("#%d %s (%d tracks)\n", snapshot.Sequence(), snapshot.Name(), snapshot.TrackCount())
		r.writePlain("   id: %s\n", snapshot.ID())
		r.writePlain("   url: %s\n", snapshot.SourceURL())
		r.writePlain("   fetched: %s\n", snapshot.CreatedAt().Format("2006-01-02 15:04:05"))
	}

	return nil
}

// CacheShow prints a cached snapshot's stored playlist payload.
func (r *Runner) CacheShow(ctx context.Context, cmd *cli.Command) error {
	if r.snapshots == nil {
		return fmt.Errorf("%w: snapshot database not initialized", shared.ErrServiceUnavailable)
	}

	snapshot, err := r.snapshots.Get(cmd.String("id"))
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	if !cmd.Bool("pretty") {
		return r.writePlain("%s\n", snapshot.Payload())
	}

	var payload any
	if err := json.Unmarshal([]byte(snapshot.Payload()), &payload); err != nil {
		// Stored payload is opaque here; print it as-is when it fails to parse.
		return r.writePlain("%s\n", snapshot.Payload())
	}
	return r.writeJSON(payload, true)
}
