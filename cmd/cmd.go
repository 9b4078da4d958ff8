// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// randomCommand picks one or more tracks from the pool
func randomCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "random",
		Aliases: []string{"r", "pick"},
		Usage:   "Pick random tracks, weighted toward the top of the pool",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "Number of tracks to pick (max 10)",
				Value:   1,
			},
			&cli.StringFlag{
				Name:  "pool",
				Usage: "Pool to draw from: trending or alltime",
				Value: "trending",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
			&cli.BoolFlag{
				Name:  "download",
				Usage: "Download the picked tracks",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Save picks to tunepool_picks.json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Download output directory",
			},
		},
		Action: r.Random,
	}
}

// searchCommand searches the pool (or the upstream catalog) by title, artist or genre
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "search",
		Aliases: []string{"s", "find"},
		Usage:   "Search tracks by title, artist or genre",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "pool",
				Usage: "Pool to search: trending or alltime",
				Value: "trending",
			},
			&cli.BoolFlag{
				Name:  "remote",
				Usage: "Search the upstream catalog instead of the local pool",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: text, csv or markdown",
				Value: "text",
			},
		},
		Action: r.Search,
	}
}

// poolCommand inspects and refreshes the in-memory pools
func poolCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "pool",
		Usage: "Inspect and manage the track pools",
		Commands: []*cli.Command{
			{
				Name:  "status",
				Usage: "Show pool sizes, freshness and TTL",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.PoolStatus,
			},
			{
				Name:  "refresh",
				Usage: "Force a refresh from the catalog API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "pool",
						Usage: "Pool to refresh: trending, alltime or all",
						Value: "all",
					},
				},
				Action: r.PoolRefresh,
			},
		},
	}
}

// serveCommand runs the HTTP API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the track API over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host interface to bind",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on",
			},
		},
		Action: r.Serve,
	}
}

// downloadCommand fetches a track's audio to disk
func downloadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "download",
		Aliases: []string{"dl"},
		Usage:   "Download a track by ID, or a random one",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "track-id",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "random",
				Usage: "Pick the track to download at random",
			},
			&cli.StringFlag{
				Name:  "pool",
				Usage: "Pool to resolve the track from: trending or alltime",
				Value: "trending",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory",
			},
		},
		Action: r.DownloadTrack,
	}
}

// tuiCommand launches the interactive browser
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Browse the pool in an interactive terminal UI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "pool",
				Usage: "Pool to browse: trending or alltime",
				Value: "trending",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Download output directory",
			},
		},
		Action: r.TUI,
	}
}

// setupCommand writes a starter config file
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a starter configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}
