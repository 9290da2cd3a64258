package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-intelligence/internal/insights"
	"github.com/i474232898/weather-intelligence/internal/weather"
)

// Refresher is the part of weather.Service the scheduler drives.
type Refresher interface {
	Refresh(ctx context.Context, query string) (weather.Snapshot, error)
}

// Scheduler periodically refreshes snapshots of tracked locations and logs
// the alerts raised for them.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	engine    *insights.Engine
	locations []string
	interval  time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler.
func New(locations []string, interval time.Duration, service Refresher, engine *insights.Engine, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		service:   service,
		engine:    engine,
		locations: locations,
		interval:  interval,
		logger:    logger.With("component", "scheduler"),
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		s.logger.Info("no tracked locations configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	if _, err := s.scheduler.Every(interval).Do(s.RunOnce); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce refreshes every tracked location concurrently.
func (s *Scheduler) RunOnce() {
	s.logger.Debug("running refresh job", "locations", len(s.locations))

	var wg sync.WaitGroup
	for _, loc := range s.locations {
		wg.Add(1)
		go func(loc string) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			snap, err := s.service.Refresh(ctx, loc)
			if err != nil {
				s.logger.Warn("refresh failed", "location", loc, "kind", weather.KindOf(err), "err", err)
				return
			}
			s.reportAlerts(loc, snap)
		}(loc)
	}
	wg.Wait()

	s.logger.Debug("refresh job completed")
}

func (s *Scheduler) reportAlerts(loc string, snap weather.Snapshot) {
	if s.engine == nil {
		return
	}
	report, err := s.engine.Analyze(insights.Request{
		Observation: snap.Observation,
		Location:    loc,
		Now:         snap.StoredAt,
	})
	if err != nil {
		s.logger.Warn("analysis failed", "location", loc, "err", err)
		return
	}
	for _, in := range report.Insights {
		if in.Kind == insights.KindAlert {
			s.logger.Warn("weather alert", "location", loc, "title", in.Title, "priority", in.Priority)
		}
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
