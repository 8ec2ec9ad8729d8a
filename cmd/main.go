package main

import (
	"context"
	"os"

	"github.com/NoNoBzH22/CineVault-Lite/internal/repositories"
	"github.com/NoNoBzH22/CineVault-Lite/internal/services"
	"github.com/NoNoBzH22/CineVault-Lite/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	opts := RunnerOpts{
		Config: config,
		Logger: logger,
	}

	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		if svc, err := services.NewSpotifyService(config.Credentials.Spotify.ClientID, config.Credentials.Spotify.ClientSecret); err == nil {
			opts.Catalog = svc
		}
	}

	if config.Credentials.Plex.URL != "" && config.Credentials.Plex.Token != "" {
		if client, err := services.NewPlexClient(config.Credentials.Plex.URL, config.Credentials.Plex.Token, logger); err == nil {
			opts.Library = client
			opts.Switcher = client
		}
	}

	// Snapshots are recorded only once `setup database` has created the file.
	if _, err := os.Stat(config.Database.Path); err == nil {
		if db, err := shared.NewDatabase(config.Database.Path); err == nil {
			shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
			opts.Snapshots = repositories.NewSnapshotRepository(db)
		} else {
			logger.Debug("snapshot database unavailable", "path", config.Database.Path, "err", err)
		}
	}

	runner := NewRunner(opts)

	app := &cli.Command{
		Name:     "cinevault",
		Usage:    "Sync Spotify playlists to a Plex music library",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
