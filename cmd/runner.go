package main

import (
	"fmt"
	"io"
	"os"

	"github.com/NoNoBzH22/CineVault-Lite/internal/repositories"
	"github.com/NoNoBzH22/CineVault-Lite/internal/services"
	"github.com/NoNoBzH22/CineVault-Lite/internal/shared"
	"github.com/NoNoBzH22/CineVault-Lite/internal/tasks"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config    *shared.Config
	catalog   services.CatalogSource
	library   services.Library
	switcher  services.UserSwitcher
	snapshots *repositories.SnapshotRepository
	logger    *log.Logger
	output    io.Writer
	engine    *tasks.PlaylistEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config    *shared.Config
	Catalog   services.CatalogSource
	Library   services.Library
	Switcher  services.UserSwitcher
	Snapshots *repositories.SnapshotRepository
	Logger    *log.Logger
	Output    io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	var recorder tasks.SnapshotRecorder
	if opts.Snapshots != nil {
		recorder = opts.Snapshots
	}

	engine := tasks.NewPlaylistEngine(opts.Catalog, opts.Library, opts.Switcher, recorder, opts.Config, opts.Logger)

	return &Runner{
		config:    opts.Config,
		catalog:   opts.Catalog,
		library:   opts.Library,
		switcher:  opts.Switcher,
		snapshots: opts.Snapshots,
		logger:    opts.Logger,
		output:    opts.Output,
		engine:    engine,
	}
}

// SetLogger swaps the logger on the runner and its engine.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger

	var recorder tasks.SnapshotRecorder
	if r.snapshots != nil {
		recorder = r.snapshots
	}
	r.engine = tasks.NewPlaylistEngine(r.catalog, r.library, r.switcher, recorder, r.config, logger)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, syncCommand, m3uCommand, usersCommand, serveCommand, cacheCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
