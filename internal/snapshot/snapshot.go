// Package snapshot holds the latest fully-fetched dashboard data set.
package snapshot

import (
	"sync"
	"time"

	"github.com/prontabot/occ-dashboard/internal/models"
)

// Snapshot is one complete, self-consistent data set from the upstream API.
// It is immutable once stored; a refresh produces a wholly new Snapshot.
type Snapshot struct {
	Occurrences []models.Occurrence
	Locations   []models.Location
	ActiveUsers int
	// Presences is the raw array form of /users when the upstream sent one,
	// nil when it sent a scalar count.
	Presences []models.UserPresence
	Interval  string
	FetchedAt time.Time
}

// Store is the atomic holder for the current snapshot. Readers never see a
// partial update; the last completed fetch wins.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot
}

func NewStore() *Store {
	return &Store{}
}

// Replace installs snap as the current snapshot.
func (s *Store) Replace(snap *Snapshot) {
	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()
}

// Current returns the latest snapshot, or nil before the first successful
// fetch.
func (s *Store) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
