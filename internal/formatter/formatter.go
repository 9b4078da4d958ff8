// package formatter provides functions to render track selections to various formats (plain text, CSV, Markdown)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/tunepool/tunepool/internal/models"
	"github.com/tunepool/tunepool/internal/shared"
)

// ToText renders tracks as a numbered plain-text listing for terminal output.
func ToText(tracks []models.Track) string {
	var buf bytes.Buffer

	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%s]\n", i+1, track.DisplayArtist(), track.Title, shared.FormatDuration(track.Duration)))
		if track.Genre != models.UnknownField {
			buf.WriteString(fmt.Sprintf("   Genre: %s\n", track.Genre))
		}
		if url := track.FetchURL(); url != "" {
			buf.WriteString(fmt.Sprintf("   URL: %s\n", url))
		}
	}

	return buf.String()
}

// ToCSV converts tracks to CSV with columns: ID, Title, Artist, Genre, Mood, Duration, ReleaseDate, URL
func ToCSV(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Genre", "Mood", "Duration", "ReleaseDate", "URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		record := []string{
			track.ID,
			track.Title,
			track.DisplayArtist(),
			track.Genre,
			track.Mood,
			strconv.Itoa(track.Duration),
			track.ReleaseDate,
			track.FetchURL(),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ToMarkdown converts tracks to a Markdown table with a heading.
func ToMarkdown(title string, tracks []models.Track) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(tracks)))
	buf.WriteString("| # | Title | Artist | Genre | Duration |\n")
	buf.WriteString("|---|-------|--------|-------|----------|\n")

	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
			i+1, track.Title, track.DisplayArtist(), track.Genre, shared.FormatDuration(track.Duration)))
	}

	return buf.Bytes()
}
