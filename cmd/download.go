package main

import (
	"context"
	"fmt"

	"github.com/tunepool/tunepool/internal/models"
	"github.com/tunepool/tunepool/internal/picker"
	"github.com/tunepool/tunepool/internal/shared"
	"github.com/urfave/cli/v3"
)

// DownloadTrack fetches one track's audio to disk, resolved by ID or at random.
func (r *Runner) DownloadTrack(ctx context.Context, cmd *cli.Command) error {
	trackID := cmd.StringArg("track-id")
	random := cmd.Bool("random")

	if trackID == "" && !random {
		return fmt.Errorf("%w: provide a track ID or pass --random", shared.ErrMissingArgument)
	}
	if trackID != "" && random {
		return fmt.Errorf("%w: cannot combine a track ID with --random", shared.ErrInvalidInput)
	}

	p, err := r.poolByName(cmd.String("pool"))
	if err != nil {
		return err
	}

	tracks, err := p.Tracks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load pool: %w", err)
	}

	var track models.Track
	if random {
		track, err = r.picker.SelectOne(tracks)
		if err != nil {
			return fmt.Errorf("failed to pick a track: %w", err)
		}
	} else {
		track, err = picker.FindByID(tracks, trackID)
		if err != nil {
			return err
		}
	}

	r.logger.Info("downloading", "track", track.Title, "artist", track.DisplayArtist())

	path, err := r.downloader.Download(ctx, track, r.outputDir(cmd))
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	return r.writePlainln("✓ Saved %s", path)
}
