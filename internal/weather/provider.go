package weather

import (
	"context"
	"time"
)

// Forecast day bounds accepted by the provider.
const (
	MinForecastDays = 1
	MaxForecastDays = 10
)

// Provider abstracts the external weather data source (e.g. WeatherAPI.com).
// query is a place name or a "lat,lon" pair.
type Provider interface {
	Name() string
	FetchCurrent(ctx context.Context, query string) (Observation, error)
	FetchForecast(ctx context.Context, query string, days int) (Forecast, error)
	SearchLocations(ctx context.Context, query string) ([]LocationCandidate, error)
}

// Store is the contract the snapshot stores must satisfy.
type Store interface {
	SaveSnapshot(ctx context.Context, snapshot Snapshot) error
	GetLatest(ctx context.Context, key string) (Snapshot, error)
	GetRange(ctx context.Context, key string, from, to time.Time) ([]Snapshot, error)
}
