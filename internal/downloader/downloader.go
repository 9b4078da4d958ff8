// Package downloader transfers track audio files to disk.
//
// Downloads follow redirects, bound the transfer with the request context,
// sanitize filenames taken from Content-Disposition or the URL path, render a
// progress bar when the response advertises a length, and remove partial
// files when a transfer fails midway.
package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	ansi "github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	"github.com/tunepool/tunepool/internal/models"
	"github.com/tunepool/tunepool/internal/shared"
)

// Downloader fetches track files over HTTP.
type Downloader struct {
	httpClient *http.Client
	logger     *log.Logger
	quiet      bool
}

// Opts contains configuration options for creating a [Downloader].
type Opts struct {
	HTTPClient *http.Client
	Logger     *log.Logger
	Quiet      bool // suppress the progress bar (servers, tests)
}

// New creates a downloader. The default client follows redirects and has a
// generous timeout sized for audio files.
func New(opts Opts) *Downloader {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 10 * time.Minute}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Downloader{
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		quiet:      opts.Quiet,
	}
}

// Download saves the track's audio file under outputDir and returns the written path.
//
// The download URL falls back to the stream URL when the track has no
// dedicated download asset. Fails with [shared.ErrInvalidRecord] when the
// track has neither.
func (d *Downloader) Download(ctx context.Context, track models.Track, outputDir string) (string, error) {
	fetchURL := track.FetchURL()
	if fetchURL == "" {
		return "", fmt.Errorf("%w: %s", shared.ErrInvalidRecord, track.Title)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("%w: failed to create output directory: %v", shared.ErrDownloadFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrDownloadFailed, err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", shared.ErrDownloadFailed, resp.StatusCode)
	}

	filename := d.filename(track, fetchURL, resp)
	outputPath := filepath.Join(outputDir, filename)

	outFile, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create file: %v", shared.ErrDownloadFailed, err)
	}

	var dst io.Writer = outFile
	if !d.quiet && resp.ContentLength > 0 {
		bar := progressbar.NewOptions64(
			resp.ContentLength,
			progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetTheme(progressbar.ThemeASCII),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetDescription(fmt.Sprintf("[cyan]Downloading[reset] %s", track.Title)),
		)
		dst = io.MultiWriter(outFile, bar)
	}

	written, err := io.Copy(dst, resp.Body)
	closeErr := outFile.Close()

	if err != nil {
		os.Remove(outputPath)
		return "", fmt.Errorf("%w: transfer interrupted: %v", shared.ErrDownloadFailed, err)
	}
	if closeErr != nil {
		os.Remove(outputPath)
		return "", fmt.Errorf("%w: %v", shared.ErrDownloadFailed, closeErr)
	}
	if written == 0 {
		os.Remove(outputPath)
		return "", fmt.Errorf("%w: empty file", shared.ErrDownloadFailed)
	}

	d.logger.Info("downloaded track", "title", track.Title, "path", outputPath, "bytes", written)
	return outputPath, nil
}

// filename picks a name from Content-Disposition, the URL path, or the track
// metadata, in that order, and sanitizes it.
func (d *Downloader) filename(track models.Track, fetchURL string, resp *http.Response) string {
	name := ""

	if disp := resp.Header.Get("Content-Disposition"); disp != "" {
		if idx := strings.Index(disp, "filename="); idx != -1 {
			name = strings.Trim(disp[idx+len("filename="):], `"`)
		}
	}

	if name == "" {
		if u, err := url.Parse(fetchURL); err == nil && u.Path != "" {
			if base := filepath.Base(u.Path); base != "" && base != "." && base != "/" {
				name = base
			}
		}
	}

	if name == "" {
		name = fmt.Sprintf("%s - %s", track.DisplayArtist(), track.Title)
	}

	name = Sanitize(name)
	if !strings.Contains(name, ".") {
		name += ".mp3"
	}
	return name
}

// Sanitize strips path separators and characters unsafe for filenames.
func Sanitize(name string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_",
		"?", "_", `"`, "_", "<", "_", ">", "_", "|", "_",
	)
	name = replacer.Replace(strings.TrimSpace(name))
	name = strings.Trim(name, ". ")
	if name == "" {
		name = "track"
	}
	return name
}
