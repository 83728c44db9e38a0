package refresh

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/prontabot/occ-dashboard/internal/models"
	"github.com/prontabot/occ-dashboard/internal/snapshot"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// mockFetcher implements Fetcher for testing
type mockFetcher struct {
	calls atomic.Int64
	fail  atomic.Bool
	delay time.Duration
}

func (m *mockFetcher) Fetch(ctx context.Context, interval string) (*snapshot.Snapshot, error) {
	m.calls.Add(1)
	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.delay):
		}
	}
	if m.fail.Load() {
		return nil, errors.New("upstream down")
	}
	return &snapshot.Snapshot{
		Occurrences: []models.Occurrence{{UUID: "u1"}},
		Interval:    interval,
		FetchedAt:   time.Now(),
	}, nil
}

func TestRefresher_StartStop(t *testing.T) {
	fetcher := &mockFetcher{}
	store := snapshot.NewStore()
	r := NewRefresher(fetcher, store, time.Minute, "12h")

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)

	// The loop does an immediate refresh before the first tick.
	deadline := time.After(2 * time.Second)
	for store.Current() == nil {
		select {
		case <-deadline:
			t.Fatal("initial refresh never installed a snapshot")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	r.Stop()

	if snap := store.Current(); snap.Interval != "12h" {
		t.Errorf("expected default interval 12h, got %q", snap.Interval)
	}
}

func TestRefresher_PeriodicTicks(t *testing.T) {
	fetcher := &mockFetcher{}
	store := snapshot.NewStore()
	r := NewRefresher(fetcher, store, 20*time.Millisecond, "1h")

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)

	time.Sleep(110 * time.Millisecond)

	cancel()
	r.Stop()

	if calls := fetcher.calls.Load(); calls < 3 {
		t.Errorf("expected several refreshes, got %d", calls)
	}
}

func TestRefresher_ErrorKeepsPreviousSnapshot(t *testing.T) {
	fetcher := &mockFetcher{}
	store := snapshot.NewStore()
	r := NewRefresher(fetcher, store, time.Minute, "1h")

	if err := r.Refresh(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	good := store.Current()
	if good == nil {
		t.Fatal("expected a snapshot after successful refresh")
	}

	fetcher.fail.Store(true)
	if err := r.Refresh(context.Background(), ""); err == nil {
		t.Fatal("expected refresh error")
	}

	if store.Current() != good {
		t.Error("failed refresh must not replace the previous snapshot")
	}
}

func TestRefresher_IntervalSelection(t *testing.T) {
	fetcher := &mockFetcher{}
	store := snapshot.NewStore()
	r := NewRefresher(fetcher, store, time.Minute, "12h")

	if err := r.Refresh(context.Background(), "3d"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap := store.Current(); snap.Interval != "3d" {
		t.Errorf("expected snapshot scoped to 3d, got %q", snap.Interval)
	}
	// The explicit selection becomes the scope for periodic refreshes too.
	if r.Interval() != "3d" {
		t.Errorf("expected refresher interval 3d, got %q", r.Interval())
	}
}

func TestRefresher_CancelDuringFetch(t *testing.T) {
	fetcher := &mockFetcher{delay: time.Second}
	store := snapshot.NewStore()
	r := NewRefresher(fetcher, store, time.Minute, "1h")

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)

	time.Sleep(20 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		r.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("refresher.Stop() timed out")
	}
}
