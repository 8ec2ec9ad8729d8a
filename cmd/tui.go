package main

import (
	"context"
	"fmt"

	"github.com/NoNoBzH22/CineVault-Lite/internal/shared"
	"github.com/NoNoBzH22/CineVault-Lite/internal/tasks"
	"github.com/NoNoBzH22/CineVault-Lite/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for a playlist sync.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}
	if r.library == nil {
		return fmt.Errorf("%w: Plex client not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/cinevault-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	opts := tasks.SyncOptions{
		URL:          cmd.String("url"),
		PlaylistName: cmd.String("name"),
		UserID:       cmd.String("user"),
	}

	model := ui.NewModel(ctx, r.engine, opts)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
