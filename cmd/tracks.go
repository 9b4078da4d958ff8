package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tunepool/tunepool/internal/formatter"
	"github.com/tunepool/tunepool/internal/models"
	"github.com/tunepool/tunepool/internal/picker"
	"github.com/tunepool/tunepool/internal/shared"
	"github.com/urfave/cli/v3"
)

// Random picks one or more tracks from the pool, weighted toward its top.
func (r *Runner) Random(ctx context.Context, cmd *cli.Command) error {
	count := cmd.Int("count")

	p, err := r.poolByName(cmd.String("pool"))
	if err != nil {
		return err
	}

	tracks, err := p.Tracks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load pool: %w", err)
	}

	picks, err := r.picker.SelectMany(tracks, count)
	if err != nil {
		return fmt.Errorf("failed to pick tracks: %w", err)
	}

	r.logger.Info("picked tracks", "requested", count, "returned", len(picks), "pool_size", len(tracks))

	if cmd.Bool("save") {
		saveFile := "tunepool_picks.json"
		data, err := shared.MarshalJSON(picks, true)
		if err != nil {
			return fmt.Errorf("failed to marshal picks: %w", err)
		}
		if err := os.WriteFile(saveFile, data, 0644); err != nil {
			r.logger.Warn("failed to save picks", "error", err)
		} else {
			r.logger.Info("picks saved", "file", saveFile)
		}
	}

	if cmd.Bool("json") {
		if err := r.writeJSON(picks, cmd.Bool("pretty")); err != nil {
			return err
		}
	} else {
		if err := r.writePlain("%s", formatter.ToText(picks)); err != nil {
			return err
		}
	}

	if cmd.Bool("download") {
		outputDir := r.outputDir(cmd)
		for _, track := range picks {
			path, err := r.downloader.Download(ctx, track, outputDir)
			if err != nil {
				r.logger.Error("download failed", "track", track.Title, "error", err)
				continue
			}
			if err := r.writePlainln("✓ Saved %s", path); err != nil {
				return err
			}
		}
	}

	return nil
}

// Search finds tracks matching a query, against the local pool or the catalog.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}

	var results []models.Track

	if cmd.Bool("remote") {
		found, err := r.source.Search(ctx, query)
		if err != nil {
			return fmt.Errorf("catalog search failed: %w", err)
		}
		results = found
	} else {
		p, err := r.poolByName(cmd.String("pool"))
		if err != nil {
			return err
		}

		tracks, err := p.Tracks(ctx)
		if err != nil {
			return fmt.Errorf("failed to load pool: %w", err)
		}
		results = picker.Search(tracks, query)
	}

	r.logger.Info("search complete", "query", query, "matches", len(results))

	if len(results) == 0 {
		return r.writePlainln("No tracks matched %q", query)
	}

	if cmd.Bool("json") {
		return r.writeJSON(results, cmd.Bool("pretty"))
	}

	switch cmd.String("format") {
	case "csv":
		data, err := formatter.ToCSV(results)
		if err != nil {
			return fmt.Errorf("failed to render CSV: %w", err)
		}
		return r.writePlain("%s", data)
	case "markdown", "md":
		return r.writePlain("%s", formatter.ToMarkdown(fmt.Sprintf("Results for %q", query), results))
	default:
		return r.writePlain("%s", formatter.ToText(results))
	}
}

// outputDir resolves the download directory from the flag, config, then a default.
func (r *Runner) outputDir(cmd *cli.Command) string {
	if dir := cmd.String("output"); dir != "" {
		return dir
	}
	if r.config.Download.OutputDir != "" {
		return r.config.Download.OutputDir
	}
	return "downloads"
}
