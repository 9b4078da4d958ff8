package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/tunepool/tunepool/internal/catalog"
	"github.com/tunepool/tunepool/internal/downloader"
	"github.com/tunepool/tunepool/internal/picker"
	"github.com/tunepool/tunepool/internal/pool"
	"github.com/tunepool/tunepool/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	source     catalog.Source
	trending   *pool.Pool
	alltime    *pool.Pool
	picker     *picker.Picker
	downloader *downloader.Downloader
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Source     catalog.Source
	Trending   *pool.Pool
	Alltime    *pool.Pool
	Picker     *picker.Picker
	Downloader *downloader.Downloader
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
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
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Source == nil {
		opts.Source = catalog.NewClient(catalog.ClientOpts{
			BaseURL:  opts.Config.Catalog.BaseURL,
			PageSize: opts.Config.Catalog.PageSize,
			Timeout:  opts.Config.Catalog.Timeout(),
		})
	}
	if opts.Trending == nil {
		opts.Trending = pool.New(pool.Opts{
			Source:   opts.Source,
			Logger:   opts.Logger,
			TTL:      opts.Config.Pool.TTL(),
			MaxPages: opts.Config.Pool.MaxPages,
			Offset:   opts.Config.Pool.PageOffset,
			Rate:     opts.Config.Catalog.PagesPerSecond,
		})
	}
	if opts.Alltime == nil {
		// The all-time pool reads the page range right after the trending
		// pool's, so the two never fetch overlapping slices of the catalog.
		opts.Alltime = pool.New(pool.Opts{
			Source:   opts.Source,
			Logger:   opts.Logger,
			TTL:      opts.Config.Pool.TTL(),
			MaxPages: opts.Config.Pool.MaxPages,
			Offset:   opts.Config.Pool.PageOffset + opts.Config.Pool.MaxPages,
			Rate:     opts.Config.Catalog.PagesPerSecond,
		})
	}
	if opts.Picker == nil {
		opts.Picker = picker.New()
	}
	if opts.Downloader == nil {
		opts.Downloader = downloader.New(downloader.Opts{Logger: opts.Logger})
	}

	return &Runner{
		config:     opts.Config,
		source:     opts.Source,
		trending:   opts.Trending,
		alltime:    opts.Alltime,
		picker:     opts.Picker,
		downloader: opts.Downloader,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		randomCommand, searchCommand, poolCommand, serveCommand, downloadCommand, tuiCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger swaps the runner's logger, used when the TUI redirects logs to a file.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// poolByName maps the --pool flag value to a pool instance.
func (r *Runner) poolByName(name string) (*pool.Pool, error) {
	switch name {
	case "", "trending":
		return r.trending, nil
	case "alltime", "all-time":
		return r.alltime, nil
	default:
		return nil, fmt.Errorf("%w: unknown pool %q (want trending or alltime)", shared.ErrInvalidFlag, name)
	}
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
