// Package refresh drives the poll cycle: it periodically re-fetches the
// upstream data and swaps the result into the snapshot store.
package refresh

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prontabot/occ-dashboard/internal/metrics"
	"github.com/prontabot/occ-dashboard/internal/snapshot"
)

// Fetcher produces a complete snapshot for an interval token.
type Fetcher interface {
	Fetch(ctx context.Context, interval string) (*snapshot.Snapshot, error)
}

type Refresher struct {
	fetcher Fetcher
	store   *snapshot.Store
	period  time.Duration

	mu       sync.Mutex
	interval string

	wg sync.WaitGroup
}

func NewRefresher(fetcher Fetcher, store *snapshot.Store, period time.Duration, interval string) *Refresher {
	return &Refresher{
		fetcher:  fetcher,
		store:    store,
		period:   period,
		interval: interval,
	}
}

// Start launches the periodic loop: an immediate refresh, then one per
// period until ctx is cancelled. The ticker is stopped on teardown.
func (r *Refresher) Start(ctx context.Context) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		slog.Info("starting refresh loop", "period", r.period, "interval", r.Interval())

		ticker := time.NewTicker(r.period)
		defer ticker.Stop()

		if err := r.Refresh(ctx, ""); err != nil {
			slog.Error("initial refresh failed", "error", err)
		}

		for {
			select {
			case <-ctx.Done():
				slog.Info("refresh loop shutting down")
				return
			case <-ticker.C:
				if err := r.Refresh(ctx, ""); err != nil {
					slog.Error("refresh failed", "error", err)
				}
			}
		}
	}()
}

// Stop waits for the loop goroutine to exit. Call after cancelling the
// context passed to Start.
func (r *Refresher) Stop() {
	r.wg.Wait()
}

// Refresh fetches one complete snapshot and installs it. A non-empty
// interval becomes the new scope for subsequent periodic refreshes. On error
// the previous snapshot stays in place, so readers never see partial data.
func (r *Refresher) Refresh(ctx context.Context, interval string) error {
	r.mu.Lock()
	if interval != "" {
		r.interval = interval
	}
	interval = r.interval
	r.mu.Unlock()

	start := time.Now()
	snap, err := r.fetcher.Fetch(ctx, interval)
	if err != nil {
		metrics.RefreshDone("error", time.Since(start))
		return err
	}
	r.store.Replace(snap)
	metrics.RefreshDone("ok", time.Since(start))
	metrics.SnapshotSizes(len(snap.Occurrences), len(snap.Locations), snap.ActiveUsers)

	slog.Debug("refresh complete",
		"interval", interval,
		"occurrences", len(snap.Occurrences),
		"locations", len(snap.Locations),
		"active_users", snap.ActiveUsers,
		"took", time.Since(start))
	return nil
}

// Interval returns the interval token the periodic loop currently fetches.
func (r *Refresher) Interval() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interval
}
