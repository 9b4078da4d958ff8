package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tunepool/tunepool/internal/pool"
	"github.com/urfave/cli/v3"
)

// poolStatus is the serializable status of a single pool.
type poolStatus struct {
	Name            string `json:"name"`
	Size            int    `json:"size"`
	Stale           bool   `json:"stale"`
	LastRefreshedAt string `json:"last_refreshed_at,omitempty"`
	TTLSeconds      int    `json:"ttl_seconds"`
}

func statusOf(name string, p *pool.Pool) poolStatus {
	status := poolStatus{
		Name:       name,
		Size:       p.Size(),
		Stale:      p.Stale(),
		TTLSeconds: int(p.TTL().Seconds()),
	}
	if at := p.LastRefreshedAt(); !at.IsZero() {
		status.LastRefreshedAt = at.UTC().Format(time.RFC3339)
	}
	return status
}

// PoolStatus reports size, freshness and TTL for both pools without refreshing them.
func (r *Runner) PoolStatus(ctx context.Context, cmd *cli.Command) error {
	statuses := []poolStatus{
		statusOf("trending", r.trending),
		statusOf("alltime", r.alltime),
	}

	if cmd.Bool("json") {
		return r.writeJSON(statuses, cmd.Bool("pretty"))
	}

	for _, s := range statuses {
		freshness := "fresh"
		if s.Stale {
			freshness = "stale"
		}
		refreshed := s.LastRefreshedAt
		if refreshed == "" {
			refreshed = "never"
		}
		if err := r.writePlain("%-10s %4d tracks  %-5s  refreshed: %s  ttl: %ds\n",
			s.Name, s.Size, freshness, refreshed, s.TTLSeconds); err != nil {
			return err
		}
	}

	return nil
}

// PoolRefresh forces a catalog fetch for one or both pools.
func (r *Runner) PoolRefresh(ctx context.Context, cmd *cli.Command) error {
	targets := map[string]*pool.Pool{}

	switch name := cmd.String("pool"); name {
	case "", "all":
		targets["trending"] = r.trending
		targets["alltime"] = r.alltime
	default:
		p, err := r.poolByName(name)
		if err != nil {
			return err
		}
		targets[name] = p
	}

	for name, p := range targets {
		r.logger.Info("refreshing pool", "pool", name)
		if err := p.Refresh(ctx); err != nil {
			return fmt.Errorf("failed to refresh %s pool: %w", name, err)
		}
		if err := r.writePlainln("✓ %s pool refreshed (%d tracks)", name, p.Size()); err != nil {
			return err
		}
	}

	return nil
}
