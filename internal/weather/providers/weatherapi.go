package providers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-intelligence/internal/weather"
)

const (
	defaultWeatherAPIBaseURL = "https://api.weatherapi.com/v1"
	defaultWeatherAPITimeout = 10 * time.Second
)

// WeatherAPIConfig holds the injected settings of the WeatherAPI.com adapter.
type WeatherAPIConfig struct {
	BaseURL         string
	APIKey          string
	Timeout         time.Duration
	SearchMinLength int
	Logger          *slog.Logger
}

// WeatherAPIProvider implements the weather.Provider interface for WeatherAPI.com.
type WeatherAPIProvider struct {
	name      string
	apiKey    string
	baseURL   string
	timeout   time.Duration
	minSearch int
	client    *http.Client
	circuit   *gobreaker.CircuitBreaker
	logger    *slog.Logger
}

// NewWeatherAPIProvider creates the adapter. client carries the transport; tests pass one
// pointed at an httptest server or with a fake RoundTripper.
func NewWeatherAPIProvider(client *http.Client, cfg WeatherAPIConfig) *WeatherAPIProvider {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultWeatherAPIBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultWeatherAPITimeout
	}
	minSearch := cfg.SearchMinLength
	if minSearch <= 0 {
		minSearch = weather.DefaultSearchMinLength
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &WeatherAPIProvider{
		name:      "weatherapi",
		apiKey:    cfg.APIKey,
		baseURL:   baseURL,
		timeout:   timeout,
		minSearch: minSearch,
		client:    client,
		circuit:   newCircuitBreaker("weatherapi"),
		logger:    logger.With("provider", "weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

// FetchCurrent fetches and normalizes current conditions.
func (p *WeatherAPIProvider) FetchCurrent(ctx context.Context, query string) (weather.Observation, error) {
	values := url.Values{}
	values.Set("aqi", "no")

	body, err := p.get(ctx, "/current.json", query, values)
	if err != nil {
		return weather.Observation{}, err
	}
	return NormalizeCurrent(body)
}

// FetchForecast fetches and normalizes a daily forecast. days outside [1,10] is clamped.
func (p *WeatherAPIProvider) FetchForecast(ctx context.Context, query string, days int) (weather.Forecast, error) {
	days = weather.ClampDays(days)

	values := url.Values{}
	values.Set("days", strconv.Itoa(days))
	values.Set("aqi", "no")
	values.Set("alerts", "no")

	body, err := p.get(ctx, "/forecast.json", query, values)
	if err != nil {
		return weather.Forecast{}, err
	}

	fc, err := NormalizeForecast(body)
	if err != nil {
		return weather.Forecast{}, err
	}
	if len(fc.Days) > days {
		fc.Days = fc.Days[:days]
	}
	return fc, nil
}

// SearchLocations looks up places matching query. Queries shorter than the minimum
// length return an empty list without a request.
func (p *WeatherAPIProvider) SearchLocations(ctx context.Context, query string) ([]weather.LocationCandidate, error) {
	q := strings.TrimSpace(query)
	if len([]rune(q)) < p.minSearch {
		return []weather.LocationCandidate{}, nil
	}

	body, err := p.get(ctx, "/search.json", q, url.Values{})
	if err != nil {
		return nil, err
	}
	return NormalizeLocations(body)
}

func (p *WeatherAPIProvider) get(ctx context.Context, endpoint, query string, values url.Values) ([]byte, error) {
	if p.apiKey == "" {
		return nil, weather.NewValidationError("weatherapi api key is not configured")
	}
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, weather.NewValidationError("location is required")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	values.Set("q", q)
	p.logger.Debug("weather api request", "endpoint", endpoint, "q", q)
	values.Set("key", p.apiKey)

	u := fmt.Sprintf("%s%s?%s", p.baseURL, endpoint, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, weather.NewValidationError(fmt.Sprintf("invalid request: %v", err))
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	body, err := doRequest(ctx, p.client, p.circuit, req)
	if err != nil {
		p.logger.Warn("weather api request failed",
			"endpoint", endpoint, "q", q, "kind", weather.KindOf(err), "err", err)
		return nil, err
	}
	p.logger.Debug("weather api response", "endpoint", endpoint, "q", q, "elapsed", time.Since(start))
	return body, nil
}
