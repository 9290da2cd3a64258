package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/i474232898/weather-intelligence/internal/weather"
)

var (
	// ErrNotFound is returned when no snapshot is available for a location.
	ErrNotFound = errors.New("no weather data for location")
)

// MemoryStore is a concurrency-safe in-memory snapshot store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location key, value: snapshots ordered by StoredAt
	data map[string][]weather.Snapshot

	// retention configuration
	maxHistory int           // max number of snapshots per location
	maxAge     time.Duration // optional max age for snapshots

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory or maxAge is <= 0, that limit is disabled.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string][]weather.Snapshot),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveSnapshot appends a snapshot and enforces retention.
func (s *MemoryStore) SaveSnapshot(_ context.Context, snap weather.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.data[snap.LocationKey], snap)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history) > s.maxHistory {
		history = history[len(history)-s.maxHistory:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for i < len(history) && history[i].StoredAt.Before(cutoff) {
			i++
		}
		history = history[i:]
	}

	s.data[snap.LocationKey] = history
	return nil
}

// GetLatest returns the most recent snapshot for a location.
func (s *MemoryStore) GetLatest(_ context.Context, key string) (weather.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.data[key]
	if len(history) == 0 {
		return weather.Snapshot{}, ErrNotFound
	}
	return history[len(history)-1], nil
}

// GetRange returns snapshots stored between from and to (inclusive).
func (s *MemoryStore) GetRange(_ context.Context, key string, from, to time.Time) ([]weather.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []weather.Snapshot
	for _, snap := range s.data[key] {
		if !snap.StoredAt.Before(from) && !snap.StoredAt.After(to) {
			result = append(result, snap)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}
