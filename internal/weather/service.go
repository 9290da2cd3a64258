package weather

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/i474232898/weather-intelligence/internal/common"
)

// DefaultSearchMinLength is the shortest query forwarded to the provider search endpoint.
const DefaultSearchMinLength = 2

// Service fronts the provider with input normalization and joint fetches,
// and records snapshots for tracked locations.
type Service struct {
	provider        Provider
	store           Store
	searchMinLength int
	logger          *slog.Logger
	now             func() time.Time
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithSearchMinLength overrides the minimum location search query length.
func WithSearchMinLength(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.searchMinLength = n
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the wall clock used for snapshot timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a new Service. store may be nil when no snapshots are kept.
func NewService(provider Provider, store Store, opts ...ServiceOption) *Service {
	s := &Service{
		provider:        provider,
		store:           store,
		searchMinLength: DefaultSearchMinLength,
		logger:          slog.Default(),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ClampDays limits a requested forecast length to [MinForecastDays, MaxForecastDays].
func ClampDays(days int) int {
	return common.ClampInt(days, MinForecastDays, MaxForecastDays)
}

// CoordinatesQuery formats a lat/lon pair as a provider query.
func CoordinatesQuery(lat, lon float64) string {
	return fmt.Sprintf("%g,%g", lat, lon)
}

func normalizeQuery(query string) (string, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return "", NewValidationError("location is required")
	}
	return q, nil
}

// Current returns the current observation for a location.
func (s *Service) Current(ctx context.Context, query string) (Observation, error) {
	q, err := normalizeQuery(query)
	if err != nil {
		return Observation{}, err
	}
	return s.provider.FetchCurrent(ctx, q)
}

// Forecast returns the current observation and a daily forecast. days is clamped, not rejected.
func (s *Service) Forecast(ctx context.Context, query string, days int) (Forecast, error) {
	q, err := normalizeQuery(query)
	if err != nil {
		return Forecast{}, err
	}
	clamped := ClampDays(days)
	if clamped != days {
		s.logger.Debug("forecast days clamped", "requested", days, "days", clamped)
	}
	return s.provider.FetchForecast(ctx, q, clamped)
}

// Search returns location candidates; queries shorter than the minimum length
// return an empty list without contacting the provider.
func (s *Service) Search(ctx context.Context, query string) ([]LocationCandidate, error) {
	q := strings.TrimSpace(query)
	if len([]rune(q)) < s.searchMinLength {
		return []LocationCandidate{}, nil
	}
	return s.provider.SearchLocations(ctx, q)
}

// Overview fetches the current observation and the forecast concurrently.
// If either call fails the other result is discarded and that error is returned.
func (s *Service) Overview(ctx context.Context, query string, days int) (Forecast, error) {
	q, err := normalizeQuery(query)
	if err != nil {
		return Forecast{}, err
	}

	var (
		current  Observation
		forecast Forecast
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		obs, err := s.provider.FetchCurrent(gctx, q)
		if err != nil {
			return err
		}
		current = obs
		return nil
	})
	g.Go(func() error {
		fc, err := s.provider.FetchForecast(gctx, q, ClampDays(days))
		if err != nil {
			return err
		}
		forecast = fc
		return nil
	})

	if err := g.Wait(); err != nil {
		return Forecast{}, err
	}

	return Forecast{Current: current, Days: forecast.Days}, nil
}

// Refresh fetches the current observation for a tracked location and stores a snapshot.
func (s *Service) Refresh(ctx context.Context, query string) (Snapshot, error) {
	obs, err := s.Current(ctx, query)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		LocationKey: TrackingKey(query),
		Observation: obs,
		StoredAt:    s.now().UTC(),
	}
	if s.store == nil {
		return snap, nil
	}
	if err := s.store.SaveSnapshot(ctx, snap); err != nil {
		return Snapshot{}, fmt.Errorf("save snapshot for %s: %w", snap.LocationKey, err)
	}
	return snap, nil
}

// Latest returns the most recent stored snapshot for a tracked location.
func (s *Service) Latest(ctx context.Context, query string) (Snapshot, error) {
	if s.store == nil {
		return Snapshot{}, fmt.Errorf("no snapshot store configured")
	}
	return s.store.GetLatest(ctx, TrackingKey(query))
}

// History returns stored snapshots for a tracked location between from and to (inclusive).
func (s *Service) History(ctx context.Context, query string, from, to time.Time) ([]Snapshot, error) {
	if s.store == nil {
		return nil, fmt.Errorf("no snapshot store configured")
	}
	return s.store.GetRange(ctx, TrackingKey(query), from, to)
}

// TrackingKey canonicalizes a location query for use as a store key.
func TrackingKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
