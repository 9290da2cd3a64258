package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestSQLite(t *testing.T, maxHistory int) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(":memory:", maxHistory)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t, 0)

	in := snapshot("london", t0, 15)
	if err := s.SaveSnapshot(ctx, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.GetLatest(ctx, "london")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.LocationKey != "london" || !got.StoredAt.Equal(t0) {
		t.Fatalf("unexpected snapshot header %+v", got)
	}
	if got.Observation.Temperature != 15 || got.Observation.DewPoint != in.Observation.DewPoint {
		t.Fatalf("observation did not survive storage: %+v", got.Observation)
	}
	if got.Observation.Comfort != in.Observation.Comfort || got.Observation.Location.Name != "london" {
		t.Fatalf("derived fields did not survive storage: %+v", got.Observation)
	}
}

func TestSQLiteStoreRangeAndTrim(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t, 3)

	for i := 0; i < 5; i++ {
		if err := s.SaveSnapshot(ctx, snapshot("london", t0.Add(time.Duration(i)*time.Hour), float64(i))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	_ = s.SaveSnapshot(ctx, snapshot("paris", t0, 99))

	got, err := s.GetRange(ctx, "london", t0, t0.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected history trimmed to 3, got %d", len(got))
	}
	for i, snap := range got {
		if want := float64(i + 2); snap.Observation.Temperature != want {
			t.Fatalf("snapshot %d: expected temperature %v, got %v", i, want, snap.Observation.Temperature)
		}
	}

	inclusive, err := s.GetRange(ctx, "london", t0.Add(3*time.Hour), t0.Add(4*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inclusive) != 2 {
		t.Fatalf("expected inclusive bounds, got %d snapshots", len(inclusive))
	}

	latest, err := s.GetLatest(ctx, "paris")
	if err != nil || latest.Observation.Temperature != 99 {
		t.Fatalf("expected other locations untouched, got %+v (%v)", latest, err)
	}
}

func TestSQLiteStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t, 0)

	if _, err := s.GetLatest(ctx, "nowhere"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetRange(ctx, "nowhere", t0, t0.Add(time.Hour)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStoreFilePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "weather.db")

	s, err := OpenSQLite(path, 0)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := s.SaveSnapshot(ctx, snapshot("berlin", t0, 7)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLite(path, 0)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetLatest(ctx, "berlin")
	if err != nil || got.Observation.Temperature != 7 {
		t.Fatalf("expected persisted snapshot, got %+v (%v)", got, err)
	}
}
