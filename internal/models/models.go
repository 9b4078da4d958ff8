package models

import "strings"

// UnknownField is the sentinel stored for descriptive metadata absent upstream.
const UnknownField = "Unknown"

// UnknownArtist is the display fallback for tracks with no artist credits.
const UnknownArtist = "Unknown Artist"

// Track represents a normalized royalty-free music catalog entry.
type Track struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Artists      []string `json:"artists"`
	StreamURL    string   `json:"stream_url,omitempty"`
	DownloadURL  string   `json:"download_url,omitempty"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	Genre        string   `json:"genre"`
	Mood         string   `json:"mood"`
	Duration     int      `json:"duration"` // Duration in seconds
	ReleaseDate  string   `json:"release_date"`
}

// DisplayArtist returns the artist credits joined for display, falling back to [UnknownArtist].
func (t Track) DisplayArtist() string {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		if strings.TrimSpace(a) != "" {
			names = append(names, strings.TrimSpace(a))
		}
	}
	if len(names) == 0 {
		return UnknownArtist
	}
	return strings.Join(names, ", ")
}

// FetchURL returns the URL to use for a full download, preferring DownloadURL and falling back to StreamURL.
func (t Track) FetchURL() string {
	if t.DownloadURL != "" {
		return t.DownloadURL
	}
	return t.StreamURL
}

// SearchText returns the lowercased haystack matched by pool searches: title, artists and genre.
func (t Track) SearchText() string {
	parts := append([]string{t.Title}, t.Artists...)
	if t.Genre != "" && t.Genre != UnknownField {
		parts = append(parts, t.Genre)
	}
	return strings.ToLower(strings.Join(parts, " "))
}
