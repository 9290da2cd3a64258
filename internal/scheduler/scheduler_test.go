package scheduler

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/i474232898/weather-intelligence/internal/insights"
	"github.com/i474232898/weather-intelligence/internal/weather"
)

type fakeRefresher struct {
	mu       sync.Mutex
	calls    []string
	pressure float64
	fail     map[string]bool
}

func (f *fakeRefresher) Refresh(_ context.Context, query string) (weather.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, query)
	if f.fail[query] {
		return weather.Snapshot{}, weather.NewNetworkError("connection refused", nil)
	}
	return weather.Snapshot{
		LocationKey: weather.TrackingKey(query),
		StoredAt:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Observation: weather.Observation{Temperature: 12, Humidity: 70, Pressure: f.pressure, Visibility: 10}.Derive(),
	}, nil
}

// syncBuffer guards a bytes.Buffer written by concurrent refresh goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunOnceRefreshesEveryLocation(t *testing.T) {
	var logs syncBuffer
	lg := slog.New(slog.NewTextHandler(&logs, nil))

	ref := &fakeRefresher{pressure: 990, fail: map[string]bool{"Atlantis": true}}
	s := New([]string{"London", "Paris", "Atlantis"}, time.Minute, ref, insights.NewEngine(), lg)

	s.RunOnce()

	if len(ref.calls) != 3 {
		t.Fatalf("expected 3 refreshes, got %v", ref.calls)
	}
	out := logs.String()
	if !strings.Contains(out, "refresh failed") || !strings.Contains(out, "Atlantis") {
		t.Fatalf("expected failed refresh to be logged, got %q", out)
	}
	if strings.Count(out, "weather alert") != 2 {
		t.Fatalf("expected an alert per low pressure location, got %q", out)
	}
}

func TestRunOnceNoAlertAtNormalPressure(t *testing.T) {
	var logs syncBuffer
	lg := slog.New(slog.NewTextHandler(&logs, nil))

	ref := &fakeRefresher{pressure: 1020}
	New([]string{"London"}, time.Minute, ref, insights.NewEngine(), lg).RunOnce()

	if strings.Contains(logs.String(), "weather alert") {
		t.Fatalf("did not expect an alert, got %q", logs.String())
	}
}

func TestStartWithoutLocationsIsNoop(t *testing.T) {
	ref := &fakeRefresher{}
	s := New(nil, time.Minute, ref, nil, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Stop()

	if len(ref.calls) != 0 {
		t.Fatalf("expected no refreshes, got %v", ref.calls)
	}
}

func TestStartRunsImmediately(t *testing.T) {
	ref := &fakeRefresher{pressure: 1020}
	s := New([]string{"London"}, time.Hour, ref, nil, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ref.mu.Lock()
		n := len(ref.calls)
		ref.mu.Unlock()
		if n > 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected the first refresh to run right after Start")
}
