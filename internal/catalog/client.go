// HTTP implementation of [Source]
//
// Raw response types mirror the catalog API's JSON payloads before normalization.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tunepool/tunepool/internal/models"
	"github.com/tunepool/tunepool/internal/shared"
)

const defaultBaseURL = "https://api.nocopyright.stream/v1"

// RawArtist represents an artist credit as returned by the catalog API.
type RawArtist struct {
	Name string `json:"name"`
}

// RawTrack represents a single catalog record before normalization.
//
// Every field except Title is optional upstream.
type RawTrack struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Artists   []RawArtist `json:"artists"`
	Stream    string      `json:"stream_url"`
	Download  string      `json:"download_url"`
	Thumbnail string      `json:"thumbnail_url"`
	Genre     string      `json:"genre"`
	Mood      string      `json:"mood"`
	Duration  int         `json:"duration"`
	Released  string      `json:"release_date"`
}

// pagedResponse represents a paginated catalog API response.
type pagedResponse struct {
	Tracks []RawTrack `json:"tracks"`
	Page   int        `json:"page"`
	Total  int        `json:"total"`
}

// Client implements [Source] against the catalog's JSON HTTP API.
type Client struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
}

// ClientOpts contains configuration options for creating a [Client].
type ClientOpts struct {
	BaseURL    string
	PageSize   int
	Timeout    time.Duration
	HTTPClient *http.Client
}

// NewClient creates a catalog API client with bounded request timeouts.
func NewClient(opts ClientOpts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		pageSize:   opts.PageSize,
		httpClient: opts.HTTPClient,
	}
}

func (c *Client) Name() string {
	return "catalog"
}

// doRequest performs a GET request against the catalog API and decodes the JSON response.
func (c *Client) doRequest(ctx context.Context, endpoint string, result any) error {
	apiURL := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("catalog API error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// GetPage retrieves one page of popularity-ranked tracks. Pages are 1-based.
//
// An empty page is returned as an empty slice, not an error.
func (c *Client) GetPage(ctx context.Context, page int) ([]models.Track, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1, got %d", shared.ErrInvalidInput, page)
	}

	endpoint := fmt.Sprintf("/tracks?page=%d&per_page=%d", page, c.pageSize)

	var response pagedResponse
	if err := c.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	return normalizeAll(response.Tracks), nil
}

// Search runs a remote text query against the catalog.
func (c *Client) Search(ctx context.Context, query string) ([]models.Track, error) {
	if strings.TrimSpace(query) == "" {
		return []models.Track{}, nil
	}

	endpoint := fmt.Sprintf("/tracks/search?q=%s", url.QueryEscape(query))

	var response pagedResponse
	if err := c.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	return normalizeAll(response.Tracks), nil
}

// normalizeAll converts raw catalog records to [models.Track], preserving upstream order.
func normalizeAll(raws []RawTrack) []models.Track {
	tracks := make([]models.Track, 0, len(raws))
	for _, raw := range raws {
		tracks = append(tracks, Normalize(raw))
	}
	return tracks
}

// Normalize converts a raw catalog record into a [models.Track].
//
// Records without an upstream id get a locally generated uuid. Absent
// descriptive metadata defaults to the [models.UnknownField] sentinel.
func Normalize(raw RawTrack) models.Track {
	track := models.Track{
		ID:           strings.TrimSpace(raw.ID),
		Title:        strings.TrimSpace(raw.Title),
		StreamURL:    strings.TrimSpace(raw.Stream),
		DownloadURL:  strings.TrimSpace(raw.Download),
		ThumbnailURL: strings.TrimSpace(raw.Thumbnail),
		Genre:        strings.TrimSpace(raw.Genre),
		Mood:         strings.TrimSpace(raw.Mood),
		Duration:     raw.Duration,
		ReleaseDate:  strings.TrimSpace(raw.Released),
	}

	if track.ID == "" {
		track.ID = shared.GenerateID()
	}
	if track.Title == "" {
		track.Title = models.UnknownField
	}
	if track.Genre == "" {
		track.Genre = models.UnknownField
	}
	if track.Mood == "" {
		track.Mood = models.UnknownField
	}
	if track.ReleaseDate == "" {
		track.ReleaseDate = models.UnknownField
	}

	for _, artist := range raw.Artists {
		if name := strings.TrimSpace(artist.Name); name != "" {
			track.Artists = append(track.Artists, name)
		}
	}

	return track
}
