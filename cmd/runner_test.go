package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NoNoBzH22/CineVault-Lite/internal/models"
	"github.com/NoNoBzH22/CineVault-Lite/internal/shared"
	tu "github.com/NoNoBzH22/CineVault-Lite/internal/testing"
	"github.com/urfave/cli/v3"
)

func runCommand(t *testing.T, runner *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{
		Name:     "cinevault",
		Commands: runner.register(),
	}
	return app.Run(context.Background(), append([]string{"cinevault"}, args...))
}

func testExport() *models.PlaylistExport {
	return &models.PlaylistExport{
		Playlist: models.Playlist{ID: "PL1", Name: "Road Trip", TrackCount: 1},
		Tracks: []models.Track{
			{
				ID:          "t1",
				Title:       "God's Plan",
				Artists:     []string{"Drake"},
				Album:       "Scorpion",
				TrackNumber: 1,
				DiscNumber:  1,
				DurationMS:  198000,
			},
		},
	}
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			catalog := &tu.MockCatalog{}
			library := &tu.MockLibrary{}
			switcher := &tu.MockSwitcher{}

			runner := NewRunner(RunnerOpts{
				Config:   config,
				Logger:   logger,
				Output:   output,
				Catalog:  catalog,
				Library:  library,
				Switcher: switcher,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.catalog != catalog {
				t.Error("expected catalog to be set")
			}
			if runner.library != library {
				t.Error("expected library to be set")
			}
			if runner.switcher != switcher {
				t.Error("expected switcher to be set")
			}
			if runner.engine == nil {
				t.Error("expected engine to be constructed")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Config: nil,
			})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Logger: nil,
			})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Output: nil,
			})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})
}

func TestSyncRun(t *testing.T) {
	t.Run("syncs a playlist and reports the summary", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Library.SearchRate = 0

		output := &bytes.Buffer{}
		catalog := &tu.MockCatalog{Export: testExport()}
		library := &tu.MockLibrary{
			TrackResults: map[string][]models.LibraryTrack{
				"God's Plan": {{RatingKey: "101", Title: "God's Plan", Artist: "Drake"}},
			},
		}

		runner := NewRunner(RunnerOpts{
			Config:  config,
			Catalog: catalog,
			Library: library,
			Output:  output,
		})

		err := runCommand(t, runner, "sync", "--url", "https://open.spotify.com/playlist/PL1", "--name", "Road Trip")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "Sync Complete!") {
			t.Errorf("expected completion banner, got %q", result)
		}
		if !strings.Contains(result, "Playlist created: 1/1 tracks matched.") {
			t.Errorf("expected summary line, got %q", result)
		}

		if len(library.Created) != 1 || library.Created[0].Name != "Road Trip" {
			t.Errorf("expected playlist to be created, got %+v", library.Created)
		}
	})

	t.Run("fails without an initialized library", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{
			Catalog: &tu.MockCatalog{Export: testExport()},
			Output:  &bytes.Buffer{},
		})

		err := runCommand(t, runner, "sync", "--url", "https://open.spotify.com/playlist/PL1", "--name", "Road Trip")
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestM3U(t *testing.T) {
	t.Run("writes the document to a file", func(t *testing.T) {
		outputPath := filepath.Join(t.TempDir(), "road-trip.m3u")

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Catalog: &tu.MockCatalog{Export: testExport()},
			Library: &tu.MockLibrary{},
			Output:  output,
		})

		err := runCommand(t, runner, "m3u", "--url", "https://open.spotify.com/playlist/PL1", "--output", outputPath)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, outputPath)

		data, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read M3U file: %v", err)
		}
		if !strings.HasPrefix(string(data), "#EXTM3U\n#PLAYLIST:Road Trip") {
			t.Errorf("unexpected M3U header: %q", string(data)[:40])
		}

		if !strings.Contains(output.String(), "Road Trip (1 tracks)") {
			t.Errorf("expected confirmation output, got %q", output.String())
		}
	})

	t.Run("writes to stdout without an output path", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Catalog: &tu.MockCatalog{Export: testExport()},
			Output:  output,
		})

		err := runCommand(t, runner, "m3u", "--url", "https://open.spotify.com/playlist/PL1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.HasPrefix(output.String(), "#EXTM3U\n") {
			t.Errorf("expected M3U document on stdout, got %q", output.String())
		}
	})
}

func TestUsers(t *testing.T) {
	switcher := &tu.MockSwitcher{
		Users: []models.LibraryUser{
			{ID: "main", Title: "Main Account (Admin)"},
			{ID: "42", Title: "Kid"},
		},
	}

	t.Run("prints a plain listing", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Switcher: switcher, Output: output})

		err := runCommand(t, runner, "users")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "Main Account (Admin)") || !strings.Contains(result, "Kid") {
			t.Errorf("expected both accounts listed, got %q", result)
		}
	})

	t.Run("prints JSON when requested", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Switcher: switcher, Output: output})

		err := runCommand(t, runner, "users", "--json")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(output.String(), `"id":"main"`) {
			t.Errorf("expected JSON output, got %q", output.String())
		}
	})

	t.Run("fails without an initialized switcher", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

		err := runCommand(t, runner, "users")
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestCache(t *testing.T) {
	t.Run("list fails without a snapshot database", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

		err := runCommand(t, runner, "cache", "list")
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("show fails without a snapshot database", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

		err := runCommand(t, runner, "cache", "show", "--id", "abc")
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}
