package weather

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// CachedProvider wraps a Provider and keeps current and forecast responses for a short TTL.
// Searches are not cached.
type CachedProvider struct {
	Provider

	ttl time.Duration
	now func() time.Time

	mu        sync.RWMutex
	current   map[string]cacheEntry[Observation]
	forecasts map[string]cacheEntry[Forecast]
	hits      int
	misses    int
}

type cacheEntry[T any] struct {
	value    T
	storedAt time.Time
}

// NewCachedProvider creates a caching wrapper; a non-positive ttl disables caching.
func NewCachedProvider(p Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		Provider:  p,
		ttl:       ttl,
		now:       time.Now,
		current:   make(map[string]cacheEntry[Observation]),
		forecasts: make(map[string]cacheEntry[Forecast]),
	}
}

// Name returns the name of the underlying provider with a [Cached] suffix.
func (c *CachedProvider) Name() string {
	return c.Provider.Name() + " [Cached]"
}

func (c *CachedProvider) fresh(storedAt time.Time) bool {
	return c.ttl > 0 && c.now().Sub(storedAt) < c.ttl
}

// FetchCurrent returns a cached observation when fresh, otherwise fetches and caches it.
func (c *CachedProvider) FetchCurrent(ctx context.Context, query string) (Observation, error) {
	key := TrackingKey(query)

	c.mu.RLock()
	entry, found := c.current[key]
	c.mu.RUnlock()

	if found && c.fresh(entry.storedAt) {
		c.count(true)
		return entry.value, nil
	}
	c.count(false)

	obs, err := c.Provider.FetchCurrent(ctx, query)
	if err != nil {
		return Observation{}, err
	}

	if c.ttl > 0 {
		c.mu.Lock()
		c.current[key] = cacheEntry[Observation]{value: obs, storedAt: c.now()}
		c.mu.Unlock()
	}
	return obs, nil
}

// FetchForecast returns a cached forecast when fresh, otherwise fetches and caches it.
func (c *CachedProvider) FetchForecast(ctx context.Context, query string, days int) (Forecast, error) {
	key := TrackingKey(query) + "|" + strconv.Itoa(days)

	c.mu.RLock()
	entry, found := c.forecasts[key]
	c.mu.RUnlock()

	if found && c.fresh(entry.storedAt) {
		c.count(true)
		return copyForecast(entry.value), nil
	}
	c.count(false)

	fc, err := c.Provider.FetchForecast(ctx, query, days)
	if err != nil {
		return Forecast{}, err
	}

	if c.ttl > 0 {
		c.mu.Lock()
		c.forecasts[key] = cacheEntry[Forecast]{value: copyForecast(fc), storedAt: c.now()}
		c.mu.Unlock()
	}
	return fc, nil
}

func (c *CachedProvider) count(hit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if hit {
		c.hits++
	} else {
		c.misses++
	}
}

// CacheStats returns cache hit and miss counts.
func (c *CachedProvider) CacheStats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

func copyForecast(f Forecast) Forecast {
	days := make([]ForecastDay, len(f.Days))
	copy(days, f.Days)
	f.Days = days
	return f
}
