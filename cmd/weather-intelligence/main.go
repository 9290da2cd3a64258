package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	httpapi "github.com/i474232898/weather-intelligence/internal/api/http"
	"github.com/i474232898/weather-intelligence/internal/config"
	"github.com/i474232898/weather-intelligence/internal/insights"
	"github.com/i474232898/weather-intelligence/internal/logging"
	"github.com/i474232898/weather-intelligence/internal/scheduler"
	"github.com/i474232898/weather-intelligence/internal/store"
	"github.com/i474232898/weather-intelligence/internal/weather"
	"github.com/i474232898/weather-intelligence/internal/weather/providers"
)

const appName = "weather-intelligence"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg := logging.New(cfg, appName)
	slog.SetDefault(lg)

	if cfg.WeatherAPIKey == "" {
		lg.Warn("WEATHER_API_KEY is not set; weather requests will fail validation")
	}

	// Shared HTTP client for outbound calls; per-call deadlines come from each adapter.
	httpClient := &http.Client{}

	// Provider wrapped with rate limiting and a response cache.
	var provider weather.Provider = providers.NewWeatherAPIProvider(httpClient, providers.WeatherAPIConfig{
		BaseURL:         cfg.WeatherAPIBaseURL,
		APIKey:          cfg.WeatherAPIKey,
		Timeout:         cfg.WeatherAPITimeout,
		SearchMinLength: cfg.SearchMinLength,
		Logger:          lg,
	})
	provider = weather.NewRateLimitedProvider(provider, cfg.RateLimitRPS, cfg.RateLimitBurst)
	provider = weather.NewCachedProvider(provider, cfg.CacheDuration)

	snapshots, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer closeStore()

	// Core service orchestrating provider and store.
	service := weather.NewService(provider, snapshots,
		weather.WithSearchMinLength(cfg.SearchMinLength),
		weather.WithLogger(lg.With("component", "service")),
	)
	engine := insights.NewEngine()

	// Live narrative when a key is configured; the static narrator answers otherwise.
	narrator := insights.FallbackNarrator{
		Fallback: insights.StaticNarrator{},
		Logger:   lg.With("component", "narrative"),
	}
	if cfg.OpenAIAPIKey != "" {
		narrator.Primary = providers.NewOpenAINarrator(httpClient, providers.OpenAIConfig{
			BaseURL: cfg.OpenAIBaseURL,
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.OpenAITimeout,
		})
	}

	// Scheduler that periodically refreshes tracked locations.
	sched := scheduler.New(cfg.TrackedLocations, cfg.FetchInterval, service, engine, lg)
	if err := sched.Start(); err != nil {
		// log.Fatalf skips deferred calls.
		closeStore()
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler(lg),
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  appName,
			"provider": provider.Name(),
		})
	})

	httpapi.RegisterRoutes(app, httpapi.Handlers{
		Service:  service,
		Engine:   engine,
		Narrator: narrator,
	})

	go func() {
		lg.Info("listening", "port", cfg.Port, "env", cfg.AppEnv, "store", cfg.StoreDriver)
		if err := app.Listen(":" + cfg.Port); err != nil {
			lg.Error("fiber server stopped", "err", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		lg.Error("error during shutdown", "err", err)
	}
}

func openStore(cfg *config.AppConfig) (weather.Store, func(), error) {
	if cfg.StoreDriver == "sqlite" {
		db, err := store.OpenSQLite(cfg.SQLitePath, cfg.StoreMaxHistory)
		if err != nil {
			return nil, nil, err
		}
		return db, func() {
			if err := db.Close(); err != nil {
				slog.Error("close sqlite store", "err", err)
			}
		}, nil
	}
	return store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge), func() {}, nil
}
