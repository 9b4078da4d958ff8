package pool

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tunepool/tunepool/internal/catalog"
	"github.com/tunepool/tunepool/internal/models"
	"github.com/tunepool/tunepool/internal/picker"
	"github.com/tunepool/tunepool/internal/shared"
	"golang.org/x/time/rate"
)

// snapshot is one immutable, fully built generation of the pool.
//
// Never mutated after publication.
type snapshot struct {
	tracks    []models.Track
	fetchedAt time.Time
}

// Pool maintains a reasonably fresh, non-empty set of usable tracks
// fetched from a [catalog.Source].
type Pool struct {
	source   catalog.Source
	logger   *log.Logger
	ttl      time.Duration
	maxPages int
	offset   int
	limiter  *rate.Limiter

	mu        sync.RWMutex
	current   *snapshot
	refreshMu sync.Mutex // serializes refreshes for this pool
}

// Opts contains configuration options for creating a [Pool].
type Opts struct {
	Source   catalog.Source
	Logger   *log.Logger
	TTL      time.Duration // freshness window (default 30m)
	MaxPages int           // pages fetched per refresh (default 5)
	Offset   int           // first page is Offset+1; lets two pools read disjoint ranges
	Rate     float64       // page requests per second (default 2)
}

// New creates a pool with an empty snapshot. The first read triggers a refresh.
func New(opts Opts) *Pool {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = 5
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	if opts.Rate <= 0 {
		opts.Rate = 2.0
	}

	return &Pool{
		source:   opts.Source,
		logger:   opts.Logger.With("offset", opts.Offset),
		ttl:      opts.TTL,
		maxPages: opts.MaxPages,
		offset:   opts.Offset,
		limiter:  rate.NewLimiter(rate.Limit(opts.Rate), 1),
	}
}

// Tracks returns the current pool, refreshing first when it is empty or stale.
//
// When a refresh fails and a non-empty snapshot exists, the stale snapshot is
// returned instead of the error. A refresh failure over an empty pool propagates.
func (p *Pool) Tracks(ctx context.Context) ([]models.Track, error) {
	if snap := p.load(); snap != nil && !p.expired(snap) {
		return snap.tracks, nil
	}

	if err := p.Refresh(ctx); err != nil {
		if snap := p.load(); snap != nil && len(snap.tracks) > 0 {
			p.logger.Warn("refresh failed, serving stale pool", "error", err, "tracks", len(snap.tracks), "age", time.Since(snap.fetchedAt))
			return snap.tracks, nil
		}
		return nil, err
	}

	return p.load().tracks, nil
}

// Refresh rebuilds the snapshot by paging sequentially through the source.
//
// Paging starts at offset+1 and stops at the first empty page or after
// maxPages. A first-page failure is fatal; a later-page failure ends the
// refresh early and keeps the partial result. Unusable records are filtered
// out before publication.
func (p *Pool) Refresh(ctx context.Context) error {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	// Another refresh may have completed while we waited for the lock.
	if snap := p.load(); snap != nil && !p.expired(snap) {
		return nil
	}

	var collected []models.Track

	for i := 0; i < p.maxPages; i++ {
		page := p.offset + i + 1

		if err := p.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("refresh cancelled: %w", err)
		}

		tracks, err := p.source.GetPage(ctx, page)
		if err != nil {
			if i == 0 {
				return fmt.Errorf("%w: page %d: %v", shared.ErrCatalogUnavailable, page, err)
			}
			p.logger.Warn("page fetch failed, keeping partial refresh", "page", page, "error", err)
			break
		}

		if len(tracks) == 0 {
			p.logger.Debug("end of catalog", "page", page)
			break
		}

		kept := picker.FilterUsable(tracks)
		if dropped := len(tracks) - len(kept); dropped > 0 {
			p.logger.Debug("dropped records without playable urls", "page", page, "dropped", dropped)
		}

		collected = append(collected, kept...)
	}

	p.publish(&snapshot{tracks: collected, fetchedAt: time.Now()})
	p.logger.Info("pool refreshed", "tracks", len(collected))
	return nil
}

// Size returns the number of tracks in the current snapshot.
func (p *Pool) Size() int {
	if snap := p.load(); snap != nil {
		return len(snap.tracks)
	}
	return 0
}

// LastRefreshedAt returns the time of the last successful refresh, zero when never refreshed.
func (p *Pool) LastRefreshedAt() time.Time {
	if snap := p.load(); snap != nil {
		return snap.fetchedAt
	}
	return time.Time{}
}

// Stale reports whether the pool is empty or past its TTL.
func (p *Pool) Stale() bool {
	snap := p.load()
	return snap == nil || p.expired(snap)
}

// TTL returns the pool's freshness window.
func (p *Pool) TTL() time.Duration {
	return p.ttl
}

func (p *Pool) expired(snap *snapshot) bool {
	return len(snap.tracks) == 0 || time.Since(snap.fetchedAt) >= p.ttl
}

func (p *Pool) load() *snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

func (p *Pool) publish(snap *snapshot) {
	p.mu.Lock()
	p.current = snap
	p.mu.Unlock()
}
