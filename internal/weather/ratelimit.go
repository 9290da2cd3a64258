package weather

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitedProvider wraps a Provider and spaces out outbound calls.
type RateLimitedProvider struct {
	provider Provider
	limiter  *rate.Limiter
	name     string
}

// NewRateLimitedProvider creates a rate limited provider.
// rps is the maximum requests per second (fractional allowed); rps <= 0 means unlimited.
func NewRateLimitedProvider(p Provider, rps float64, burst int) *RateLimitedProvider {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedProvider{
		provider: p,
		limiter:  rate.NewLimiter(limit, burst),
		name:     fmt.Sprintf("%s [Rate Limited]", p.Name()),
	}
}

func (r *RateLimitedProvider) Name() string {
	return r.name
}

func (r *RateLimitedProvider) wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		// Wait fails early when the deadline would pass before a token is available.
		if errors.Is(err, context.Canceled) {
			return NewNetworkError("request canceled while rate limited", err)
		}
		return NewTimeoutError(fmt.Errorf("rate limit wait: %w", err))
	}
	return nil
}

func (r *RateLimitedProvider) FetchCurrent(ctx context.Context, query string) (Observation, error) {
	if err := r.wait(ctx); err != nil {
		return Observation{}, err
	}
	return r.provider.FetchCurrent(ctx, query)
}

func (r *RateLimitedProvider) FetchForecast(ctx context.Context, query string, days int) (Forecast, error) {
	if err := r.wait(ctx); err != nil {
		return Forecast{}, err
	}
	return r.provider.FetchForecast(ctx, query, days)
}

func (r *RateLimitedProvider) SearchLocations(ctx context.Context, query string) ([]LocationCandidate, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	return r.provider.SearchLocations(ctx, query)
}
