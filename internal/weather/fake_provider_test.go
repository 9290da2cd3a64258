package weather

import (
	"context"
	"errors"
	"sync"
	"time"
)

// fakeProvider is a configurable in-memory Provider that counts calls.
type fakeProvider struct {
	mu sync.Mutex

	obs      Observation
	days     []ForecastDay
	results  []LocationCandidate
	errCur   error
	errFcst  error
	errFind  error
	calls    map[string]int
	lastDays int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		obs: Observation{
			Location:    Location{Name: "Paris", Country: "France"},
			Temperature: 18,
			Humidity:    60,
			Pressure:    1015,
		}.Derive(),
		days:  []ForecastDay{{Date: "2024-05-01", MaxTemp: 20}, {Date: "2024-05-02", MaxTemp: 22}},
		calls: make(map[string]int),
	}
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
}

func (f *fakeProvider) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeProvider) FetchCurrent(_ context.Context, _ string) (Observation, error) {
	f.record("current")
	if f.errCur != nil {
		return Observation{}, f.errCur
	}
	return f.obs, nil
}

func (f *fakeProvider) FetchForecast(_ context.Context, _ string, days int) (Forecast, error) {
	f.record("forecast")
	f.mu.Lock()
	f.lastDays = days
	f.mu.Unlock()
	if f.errFcst != nil {
		return Forecast{}, f.errFcst
	}
	return Forecast{Current: f.obs, Days: f.days}, nil
}

func (f *fakeProvider) SearchLocations(_ context.Context, _ string) ([]LocationCandidate, error) {
	f.record("search")
	if f.errFind != nil {
		return nil, f.errFind
	}
	return f.results, nil
}

// memStore is a minimal Store used to observe Refresh without importing the store package.
type memStore struct {
	mu    sync.Mutex
	saved []Snapshot
}

func (m *memStore) SaveSnapshot(_ context.Context, s Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, s)
	return nil
}

func (m *memStore) GetLatest(_ context.Context, key string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.saved) - 1; i >= 0; i-- {
		if m.saved[i].LocationKey == key {
			return m.saved[i], nil
		}
	}
	return Snapshot{}, errors.New("not found")
}

func (m *memStore) GetRange(_ context.Context, key string, from, to time.Time) ([]Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Snapshot
	for _, s := range m.saved {
		if s.LocationKey == key && !s.StoredAt.Before(from) && !s.StoredAt.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}
