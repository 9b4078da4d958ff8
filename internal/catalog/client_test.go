package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tunepool/tunepool/internal/models"
)

func TestClient(t *testing.T) {
	t.Run("NewClient", func(t *testing.T) {
		t.Run("creates client with default base URL", func(t *testing.T) {
			if c := NewClient(ClientOpts{}); c.baseURL != defaultBaseURL {
				t.Errorf("expected baseURL to be %s, got %s", defaultBaseURL, c.baseURL)
			}
		})

		t.Run("trims trailing slash from base URL", func(t *testing.T) {
			c := NewClient(ClientOpts{BaseURL: "http://localhost:9000/"})
			if c.baseURL != "http://localhost:9000" {
				t.Errorf("expected trimmed baseURL, got %s", c.baseURL)
			}
		})
	})

	t.Run("GetPage", func(t *testing.T) {
		mockTracks := []map[string]any{
			{
				"id":           "trk-1",
				"title":        "On & On",
				"artists":      []map[string]string{{"name": "Cartoon"}, {"name": "Daniel Levi"}},
				"stream_url":   "https://cdn.example/on-and-on.mp3",
				"download_url": "https://cdn.example/on-and-on-full.mp3",
				"genre":        "Electronic",
				"duration":     207,
			},
			{
				"title":      "Untitled Loop",
				"stream_url": "https://cdn.example/loop.mp3",
			},
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/tracks" {
				t.Errorf("expected path /tracks, got %s", r.URL.Path)
			}
			if got := r.URL.Query().Get("page"); got != "2" {
				t.Errorf("expected page=2, got %s", got)
			}
			if got := r.URL.Query().Get("per_page"); got != "20" {
				t.Errorf("expected per_page=20, got %s", got)
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{"tracks": mockTracks, "page": 2})
		}))
		defer server.Close()

		client := NewClient(ClientOpts{BaseURL: server.URL})

		tracks, err := client.GetPage(context.Background(), 2)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(tracks) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(tracks))
		}
		if tracks[0].ID != "trk-1" {
			t.Errorf("expected upstream id to be kept, got %s", tracks[0].ID)
		}
		if tracks[0].DisplayArtist() != "Cartoon, Daniel Levi" {
			t.Errorf("unexpected artist credits: %s", tracks[0].DisplayArtist())
		}
		if tracks[1].ID == "" {
			t.Error("expected generated id for record without one")
		}
		if tracks[1].Genre != models.UnknownField {
			t.Errorf("expected sentinel genre, got %s", tracks[1].Genre)
		}

		t.Run("rejects page zero", func(t *testing.T) {
			if _, err := client.GetPage(context.Background(), 0); err == nil {
				t.Fatal("expected error for page 0")
			}
		})
	})

	t.Run("GetPage returns empty slice at end of catalog", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"tracks": []any{}})
		}))
		defer server.Close()

		client := NewClient(ClientOpts{BaseURL: server.URL})
		tracks, err := client.GetPage(context.Background(), 99)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(tracks) != 0 {
			t.Errorf("expected empty page, got %d tracks", len(tracks))
		}
	})

	t.Run("GetPage surfaces non-2xx as error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewClient(ClientOpts{BaseURL: server.URL})
		if _, err := client.GetPage(context.Background(), 1); err == nil {
			t.Fatal("expected error for 429 response")
		}
	})

	t.Run("Search", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/tracks/search" {
				t.Errorf("expected path /tracks/search, got %s", r.URL.Path)
			}
			if got := r.URL.Query().Get("q"); got != "lofi beats" {
				t.Errorf("expected query to be escaped and forwarded, got %q", got)
			}
			json.NewEncoder(w).Encode(map[string]any{"tracks": []map[string]any{
				{"id": "trk-9", "title": "Midnight Lofi", "stream_url": "https://cdn.example/lofi.mp3"},
			}})
		}))
		defer server.Close()

		client := NewClient(ClientOpts{BaseURL: server.URL})
		tracks, err := client.Search(context.Background(), "lofi beats")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(tracks) != 1 || tracks[0].Title != "Midnight Lofi" {
			t.Errorf("unexpected search results: %+v", tracks)
		}

		t.Run("blank query short-circuits", func(t *testing.T) {
			tracks, err := client.Search(context.Background(), "   ")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(tracks) != 0 {
				t.Errorf("expected no results for blank query, got %d", len(tracks))
			}
		})
	})
}

func TestNormalize(t *testing.T) {
	t.Run("fills sentinels for absent metadata", func(t *testing.T) {
		track := Normalize(RawTrack{Title: "Sky High", Stream: "https://cdn.example/sky.mp3"})

		for field, got := range map[string]string{
			"genre":        track.Genre,
			"mood":         track.Mood,
			"release date": track.ReleaseDate,
		} {
			if got != models.UnknownField {
				t.Errorf("expected %s to default to %q, got %q", field, models.UnknownField, got)
			}
		}
	})

	t.Run("drops blank artist credits", func(t *testing.T) {
		track := Normalize(RawTrack{Title: "x", Artists: []RawArtist{{Name: " "}, {Name: "Tobu"}}})
		if len(track.Artists) != 1 || track.Artists[0] != "Tobu" {
			t.Errorf("expected single artist Tobu, got %v", track.Artists)
		}
	})

	t.Run("generated ids are unique", func(t *testing.T) {
		a := Normalize(RawTrack{Title: "a"})
		b := Normalize(RawTrack{Title: "b"})
		if a.ID == b.ID {
			t.Error("expected distinct generated ids")
		}
	})
}
