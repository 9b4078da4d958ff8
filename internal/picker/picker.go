// Package picker implements weighted random selection and local search over a
// pool of tracks.
//
// Pools arrive ordered by descending upstream popularity, so a draw is biased
// toward the front of the slice: 70% of draws land in the top 60%, 20% in the
// top 80% and 10% anywhere. When the upstream ordering assumption does not
// hold the bias silently degrades to near-uniform, which is an accepted
// simplification.
//
// All functions are pure over their inputs plus an injectable random source;
// the package retains no state.
package picker

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/tunepool/tunepool/internal/models"
	"github.com/tunepool/tunepool/internal/shared"
)

const (
	// maxBatch caps how many tracks a single multi-draw may return.
	maxBatch = 10

	// maxDrawAttempts bounds the retry loop that avoids duplicate titles in a batch.
	maxDrawAttempts = 10
)

// Picker draws tracks from popularity-ranked pools.
type Picker struct {
	rng *rand.Rand
}

// New creates a picker with its own time-seeded random source.
func New() *Picker {
	return NewWithSource(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithSource creates a picker drawing from the given random source, for deterministic tests.
func NewWithSource(rng *rand.Rand) *Picker {
	return &Picker{rng: rng}
}

// SelectOne performs one popularity-weighted random draw over the pool.
//
// Fails with [shared.ErrEmptyPool] when the pool has no tracks.
func (p *Picker) SelectOne(pool []models.Track) (models.Track, error) {
	if len(pool) == 0 {
		return models.Track{}, shared.ErrEmptyPool
	}

	slice := pool
	switch r := p.rng.Float64(); {
	case r < 0.70:
		slice = pool[:prefixLen(len(pool), 0.60)]
	case r < 0.90:
		slice = pool[:prefixLen(len(pool), 0.80)]
	}

	return slice[p.rng.Intn(len(slice))], nil
}

// SelectMany draws up to count tracks, preferring distinct titles.
//
// The result holds exactly min(count, 10, len(pool)) tracks. Each slot retries
// a bounded number of times to avoid a title already in the batch; when the
// budget runs out duplicates are tolerated rather than failing the call.
func (p *Picker) SelectMany(pool []models.Track, count int) ([]models.Track, error) {
	if len(pool) == 0 {
		return nil, shared.ErrEmptyPool
	}

	if count > maxBatch {
		count = maxBatch
	}
	if count > len(pool) {
		count = len(pool)
	}
	if count < 1 {
		count = 1
	}

	seen := make(map[string]struct{}, count)
	batch := make([]models.Track, 0, count)

	for len(batch) < count {
		pick, err := p.SelectOne(pool)
		if err != nil {
			return nil, err
		}

		for attempt := 1; attempt < maxDrawAttempts; attempt++ {
			if _, dup := seen[strings.ToLower(pick.Title)]; !dup {
				break
			}
			if pick, err = p.SelectOne(pool); err != nil {
				return nil, err
			}
		}

		seen[strings.ToLower(pick.Title)] = struct{}{}
		batch = append(batch, pick)
	}

	return batch, nil
}

// Search filters the pool by case-insensitive substring match against title,
// artists and genre. A blank query yields an empty result, not the whole pool.
func Search(pool []models.Track, query string) []models.Track {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []models.Track{}
	}

	matches := []models.Track{}
	for _, track := range pool {
		if strings.Contains(track.SearchText(), query) {
			matches = append(matches, track)
		}
	}
	return matches
}

// Usable reports whether the track has at least one playable or downloadable URL.
func Usable(track models.Track) bool {
	return track.StreamURL != "" || track.DownloadURL != ""
}

// FilterUsable returns the pool with unusable tracks removed, preserving order.
func FilterUsable(pool []models.Track) []models.Track {
	kept := make([]models.Track, 0, len(pool))
	for _, track := range pool {
		if Usable(track) {
			kept = append(kept, track)
		}
	}
	return kept
}

// FindByID returns the pool track with the given id.
func FindByID(pool []models.Track, id string) (models.Track, error) {
	for _, track := range pool {
		if track.ID == id {
			return track, nil
		}
	}
	return models.Track{}, fmt.Errorf("%w: %s", shared.ErrTrackNotFound, id)
}

// prefixLen converts a rank fraction to a slice length, never below 1.
func prefixLen(total int, fraction float64) int {
	n := int(float64(total) * fraction)
	if n < 1 {
		n = 1
	}
	return n
}
