package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	AppEnv   string
	LogLevel slog.Level
	Port     string

	// Weather provider.
	WeatherAPIKey     string
	WeatherAPIBaseURL string
	WeatherAPITimeout time.Duration
	// CacheDuration is the TTL of the provider response cache (0 = disabled).
	CacheDuration   time.Duration
	RateLimitRPS    float64 // 0 = unlimited
	RateLimitBurst  int
	SearchMinLength int

	// Narrative (OpenAI-compatible) service.
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	OpenAITimeout time.Duration

	// TrackedLocations are refreshed by the scheduler every FetchInterval.
	TrackedLocations []string
	FetchInterval    time.Duration

	// Snapshot store.
	StoreDriver     string // memory or sqlite
	SQLitePath      string
	StoreMaxHistory int           // max number of snapshots per location (0 = unlimited)
	StoreMaxAge     time.Duration // max age of snapshots (0 = unlimited)
}

// Load reads configuration from the environment with sensible defaults.
// The caller is expected to have loaded any .env file beforehand.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}
	var err error

	cfg.AppEnv = getenvDefault("APP_ENV", "dev")
	switch cfg.AppEnv {
	case "dev", "prod":
	default:
		return nil, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", cfg.AppEnv)
	}

	if cfg.LogLevel, err = parseLogLevel(getenvDefault("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	cfg.Port = getenvDefault("PORT", "8080")

	cfg.WeatherAPIKey = os.Getenv("WEATHER_API_KEY")
	cfg.WeatherAPIBaseURL = getenvDefault("WEATHER_API_BASE_URL", "https://api.weatherapi.com/v1")
	if cfg.WeatherAPITimeout, err = getenvDuration("WEATHER_API_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.CacheDuration, err = getenvDuration("WEATHER_CACHE_DURATION", "5m"); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = getenvFloat("WEATHER_RATE_LIMIT_RPS", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getenvInt("WEATHER_RATE_LIMIT_BURST", 5); err != nil {
		return nil, err
	}
	if cfg.SearchMinLength, err = getenvInt("SEARCH_MIN_LENGTH", 2); err != nil {
		return nil, err
	}

	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIBaseURL = getenvDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	cfg.OpenAIModel = getenvDefault("OPENAI_MODEL", "gpt-3.5-turbo")
	if cfg.OpenAITimeout, err = getenvDuration("OPENAI_TIMEOUT", "20s"); err != nil {
		return nil, err
	}

	cfg.TrackedLocations = splitList(os.Getenv("TRACKED_LOCATIONS"))
	if cfg.FetchInterval, err = getenvDuration("FETCH_INTERVAL", "15m"); err != nil {
		return nil, err
	}

	cfg.StoreDriver = strings.ToLower(getenvDefault("STORE_DRIVER", "memory"))
	switch cfg.StoreDriver {
	case "memory", "sqlite":
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q (allowed: memory, sqlite)", cfg.StoreDriver)
	}
	cfg.SQLitePath = getenvDefault("SQLITE_PATH", "data/weather.db")
	// roughly 24h at 15-minute intervals
	if cfg.StoreMaxHistory, err = getenvInt("STORE_MAX_HISTORY", 96); err != nil {
		return nil, err
	}
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "24h"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitList splits a ";"-separated list, since location queries may contain commas ("Paris,FR").
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
