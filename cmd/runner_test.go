package main

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/tunepool/tunepool/internal/models"
	"github.com/tunepool/tunepool/internal/picker"
	"github.com/tunepool/tunepool/internal/pool"
	"github.com/tunepool/tunepool/internal/shared"
	tu "github.com/tunepool/tunepool/internal/testing"
	"github.com/urfave/cli/v3"
)

// testRunner builds a Runner backed by an in-memory catalog, returning the
// runner, its output buffer and the mock source for call assertions.
func testRunner(tracks ...models.Track) (*Runner, *bytes.Buffer, *tu.MockSource) {
	source := &tu.MockSource{
		Pages:   map[int][]models.Track{1: tracks},
		Results: tracks,
	}
	logger := shared.NewLogger(&bytes.Buffer{})
	trending := pool.New(pool.Opts{
		Source: source,
		Logger: logger,
		TTL:    time.Hour,
		Rate:   10000,
	})
	alltime := pool.New(pool.Opts{
		Source: source,
		Logger: logger,
		TTL:    time.Hour,
		Offset: 5,
		Rate:   10000,
	})

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Source:   source,
		Trending: trending,
		Alltime:  alltime,
		Picker:   picker.NewWithSource(rand.New(rand.NewSource(42))),
		Logger:   logger,
		Output:   output,
	})
	return runner, output, source
}

// run executes the CLI with the given args against the runner's commands.
func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{Name: "tunepool", Commands: r.register()}
	return app.Run(context.Background(), append([]string{"tunepool"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			source := &tu.MockSource{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Source:     source,
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
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.source != source {
				t.Error("expected source to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("constructs pools picker and downloader", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Source: &tu.MockSource{}})

			if runner.trending == nil || runner.alltime == nil {
				t.Error("expected both pools to be constructed")
			}
			if runner.picker == nil {
				t.Error("expected picker to be constructed")
			}
			if runner.downloader == nil {
				t.Error("expected downloader to be constructed")
			}
		})
	})

	t.Run("poolByName", func(t *testing.T) {
		runner, _, _ := testRunner()

		t.Run("empty name defaults to trending", func(t *testing.T) {
			p, err := runner.poolByName("")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if p != runner.trending {
				t.Error("expected trending pool")
			}
		})

		t.Run("alltime resolves", func(t *testing.T) {
			p, err := runner.poolByName("alltime")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if p != runner.alltime {
				t.Error("expected alltime pool")
			}
		})

		t.Run("unknown name fails", func(t *testing.T) {
			if _, err := runner.poolByName("weekly"); !errors.Is(err, shared.ErrInvalidFlag) {
				t.Errorf("expected ErrInvalidFlag, got %v", err)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Source: &tu.MockSource{}, Output: output})

			data := map[string]string{"key": "value"}
			if err := runner.writeJSON(data, true); err != nil {
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
			runner := NewRunner(RunnerOpts{Source: &tu.MockSource{}, Output: output})

			data := map[string]string{"key": "value"}
			if err := runner.writeJSON(data, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if !strings.Contains(output.String(), `{"key":"value"}`) {
				t.Errorf("expected compact JSON, got %s", output.String())
			}
		})

		t.Run("returns error when writer fails", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Source: &tu.MockSource{}, Output: &tu.FWriter{}})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err == nil {
				t.Error("expected write error")
			}
		})
	})
}

func TestRandom(t *testing.T) {
	t.Run("prints a numbered listing", func(t *testing.T) {
		runner, output, _ := testRunner(
			tu.UsableTrack("trk-1", "Fade", "Alan Walker"),
			tu.UsableTrack("trk-2", "Spectre", "Alan Walker"),
		)

		if err := run(t, runner, "random"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(output.String(), "1. Alan Walker - ") {
			t.Errorf("expected numbered listing, got %s", output.String())
		}
	})

	t.Run("outputs JSON with --json", func(t *testing.T) {
		runner, output, _ := testRunner(tu.UsableTrack("trk-1", "Fade", "Alan Walker"))

		if err := run(t, runner, "random", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(output.String(), `"title":"Fade"`) {
			t.Errorf("expected JSON output, got %s", output.String())
		}
	})

	t.Run("count caps at pool size", func(t *testing.T) {
		runner, output, _ := testRunner(
			tu.UsableTrack("trk-1", "Fade", "Alan Walker"),
			tu.UsableTrack("trk-2", "Spectre", "Alan Walker"),
		)

		if err := run(t, runner, "random", "--count", "9", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if strings.Count(output.String(), `"id"`) != 2 {
			t.Errorf("expected 2 tracks, got %s", output.String())
		}
	})

	t.Run("fails when catalog is unavailable", func(t *testing.T) {
		runner, _, source := testRunner()
		source.PageErrs = map[int]error{1: errors.New("boom")}

		if err := run(t, runner, "random"); !errors.Is(err, shared.ErrCatalogUnavailable) {
			t.Errorf("expected ErrCatalogUnavailable, got %v", err)
		}
	})

	t.Run("fails on empty pool", func(t *testing.T) {
		runner, _, _ := testRunner()

		if err := run(t, runner, "random"); !errors.Is(err, shared.ErrEmptyPool) {
			t.Errorf("expected ErrEmptyPool, got %v", err)
		}
	})

	t.Run("rejects unknown pool name", func(t *testing.T) {
		runner, _, _ := testRunner(tu.UsableTrack("trk-1", "Fade", "Alan Walker"))

		if err := run(t, runner, "random", "--pool", "weekly"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestSearch(t *testing.T) {
	t.Run("requires a query", func(t *testing.T) {
		runner, _, _ := testRunner()

		if err := run(t, runner, "search"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("matches case-insensitively against the pool", func(t *testing.T) {
		runner, output, _ := testRunner(
			tu.UsableTrack("trk-1", "Fade", "Alan Walker"),
			tu.UsableTrack("trk-2", "Heroes Tonight", "Janji"),
		)

		if err := run(t, runner, "search", "ALAN"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(output.String(), "Fade") {
			t.Errorf("expected Fade in results, got %s", output.String())
		}
		if strings.Contains(output.String(), "Heroes Tonight") {
			t.Errorf("expected no Janji match, got %s", output.String())
		}
	})

	t.Run("reports when nothing matches", func(t *testing.T) {
		runner, output, _ := testRunner(tu.UsableTrack("trk-1", "Fade", "Alan Walker"))

		if err := run(t, runner, "search", "zzz-no-such-track"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(output.String(), "No tracks matched") {
			t.Errorf("expected empty-result message, got %s", output.String())
		}
	})

	t.Run("remote flag hits the catalog search endpoint", func(t *testing.T) {
		runner, output, source := testRunner(tu.UsableTrack("trk-1", "Fade", "Alan Walker"))

		if err := run(t, runner, "search", "--remote", "--json", "fade"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if searches := source.Searches(); len(searches) != 1 || searches[0] != "fade" {
			t.Errorf("expected one remote search for fade, got %v", searches)
		}
		if !strings.Contains(output.String(), `"title":"Fade"`) {
			t.Errorf("expected JSON results, got %s", output.String())
		}
	})

	t.Run("renders CSV with --format csv", func(t *testing.T) {
		runner, output, _ := testRunner(tu.UsableTrack("trk-1", "Fade", "Alan Walker"))

		if err := run(t, runner, "search", "--format", "csv", "fade"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(output.String(), "ID,Title,Artist") {
			t.Errorf("expected CSV header, got %s", output.String())
		}
	})
}

func TestPoolCommands(t *testing.T) {
	t.Run("status reports both pools without refreshing", func(t *testing.T) {
		runner, output, source := testRunner(tu.UsableTrack("trk-1", "Fade", "Alan Walker"))

		if err := run(t, runner, "pool", "status"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if calls := source.PageCalls(); len(calls) != 0 {
			t.Errorf("expected status to avoid catalog calls, got %v", calls)
		}
		out := output.String()
		if !strings.Contains(out, "trending") || !strings.Contains(out, "alltime") {
			t.Errorf("expected both pools in status, got %s", out)
		}
		if !strings.Contains(out, "never") {
			t.Errorf("expected unrefreshed pools to report never, got %s", out)
		}
	})

	t.Run("status outputs JSON with --json", func(t *testing.T) {
		runner, output, _ := testRunner(tu.UsableTrack("trk-1", "Fade", "Alan Walker"))

		if err := run(t, runner, "pool", "status", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(output.String(), `"name":"trending"`) {
			t.Errorf("expected JSON status, got %s", output.String())
		}
	})

	t.Run("refresh fills the named pool", func(t *testing.T) {
		runner, output, _ := testRunner(tu.UsableTrack("trk-1", "Fade", "Alan Walker"))

		if err := run(t, runner, "pool", "refresh", "--pool", "trending"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if runner.trending.Size() != 1 {
			t.Errorf("expected 1 track after refresh, got %d", runner.trending.Size())
		}
		if !strings.Contains(output.String(), "trending pool refreshed (1 tracks)") {
			t.Errorf("expected refresh confirmation, got %s", output.String())
		}
	})

	t.Run("refresh surfaces catalog failures", func(t *testing.T) {
		runner, _, source := testRunner()
		source.PageErrs = map[int]error{1: errors.New("boom")}

		if err := run(t, runner, "pool", "refresh", "--pool", "trending"); !errors.Is(err, shared.ErrCatalogUnavailable) {
			t.Errorf("expected ErrCatalogUnavailable, got %v", err)
		}
	})
}

func TestDownloadCommand(t *testing.T) {
	t.Run("requires an ID or the random flag", func(t *testing.T) {
		runner, _, _ := testRunner(tu.UsableTrack("trk-1", "Fade", "Alan Walker"))

		if err := run(t, runner, "download"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("rejects combining an ID with the random flag", func(t *testing.T) {
		runner, _, _ := testRunner(tu.UsableTrack("trk-1", "Fade", "Alan Walker"))

		if err := run(t, runner, "download", "--random", "trk-1"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("fails on unknown track ID", func(t *testing.T) {
		runner, _, _ := testRunner(tu.UsableTrack("trk-1", "Fade", "Alan Walker"))

		if err := run(t, runner, "download", "trk-404"); !errors.Is(err, shared.ErrTrackNotFound) {
			t.Errorf("expected ErrTrackNotFound, got %v", err)
		}
	})
}

func TestSetup(t *testing.T) {
	t.Run("creates a config file", func(t *testing.T) {
		runner, output, _ := testRunner()
		path := t.TempDir() + "/config.toml"

		if err := run(t, runner, "setup", "--config", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, path)
		if !strings.Contains(output.String(), "✓ Wrote") {
			t.Errorf("expected confirmation, got %s", output.String())
		}

		config, err := shared.LoadConfig(path)
		if err != nil {
			t.Fatalf("expected created config to parse, got %v", err)
		}
		if config.Pool.TTL() <= 0 {
			t.Error("expected a positive pool TTL in the template")
		}
	})

	t.Run("leaves an existing config untouched", func(t *testing.T) {
		runner, output, _ := testRunner()
		path := t.TempDir() + "/config.toml"
		if err := os.WriteFile(path, []byte("[pool]\nttl_minutes = 7\n"), 0644); err != nil {
			t.Fatal(err)
		}

		if err := run(t, runner, "setup", "--config", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(output.String(), "leaving it untouched") {
			t.Errorf("expected untouched message, got %s", output.String())
		}

		config, err := shared.LoadConfig(path)
		if err != nil {
			t.Fatal(err)
		}
		if config.Pool.TTLMinutes != 7 {
			t.Errorf("expected original config preserved, got ttl %d", config.Pool.TTLMinutes)
		}
	})
}
