// Package scheduler runs periodic maintenance: interaction log retention and
// stale rate limiter counters cleanup.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/luna/pkg/settings"
)

//go:generate moq -out mocks/log_store.go -pkg mocks -skip-ensure -fmt goimports . LogStore
//go:generate moq -out mocks/rate_limit_store.go -pkg mocks -skip-ensure -fmt goimports . RateLimitStore
//go:generate moq -out mocks/settings_provider.go -pkg mocks -skip-ensure -fmt goimports . SettingsProvider

// LogStore removes old interaction log entries
type LogStore interface {
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

// RateLimitStore removes expired rate limiter counters
type RateLimitStore interface {
	Cleanup(ctx context.Context, before time.Time) (int64, error)
}

// SettingsProvider returns current runtime settings, retention days among them
type SettingsProvider interface {
	Get(ctx context.Context) settings.Settings
}

// Params groups scheduler dependencies and configuration
type Params struct {
	LogStore       LogStore
	RateLimitStore RateLimitStore
	Settings       SettingsProvider
	Logger         lgr.L

	Interval        time.Duration // how often maintenance runs
	RateLimitWindow time.Duration // counters older than this are removed
}

// Scheduler runs maintenance on a ticker
type Scheduler struct {
	logStore       LogStore
	rateLimitStore RateLimitStore
	settings       SettingsProvider
	log            lgr.L

	interval        time.Duration
	rateLimitWindow time.Duration

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewScheduler creates a new scheduler instance
func NewScheduler(params Params) *Scheduler {
	if params.Interval == 0 {
		params.Interval = time.Hour
	}
	if params.RateLimitWindow == 0 {
		params.RateLimitWindow = time.Minute
	}
	if params.Logger == nil {
		params.Logger = lgr.NoOp
	}

	return &Scheduler{
		logStore:        params.LogStore,
		rateLimitStore:  params.RateLimitStore,
		settings:        params.Settings,
		log:             params.Logger,
		interval:        params.Interval,
		rateLimitWindow: params.RateLimitWindow,
	}
}

// Start begins the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.maintenanceWorker(ctx)

	s.log.Logf("[INFO] scheduler started with maintenance interval %v", s.interval)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	s.log.Logf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.log.Logf("[INFO] scheduler stopped")
}

// maintenanceWorker runs maintenance immediately and then on every tick
func (s *Scheduler) maintenanceWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.RunMaintenance(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunMaintenance(ctx)
		}
	}
}

// RunMaintenance performs one maintenance pass. Failures are logged, the next pass retries.
func (s *Scheduler) RunMaintenance(ctx context.Context) {
	days := s.settings.Get(ctx).LogRetentionDays
	deleted, err := s.logStore.DeleteOlderThan(ctx, days)
	switch {
	case err != nil:
		s.log.Logf("[ERROR] failed to delete interaction logs older than %d days: %v", days, err)
	case deleted > 0:
		s.log.Logf("[INFO] deleted %d interaction logs older than %d days", deleted, days)
	}

	removed, err := s.rateLimitStore.Cleanup(ctx, time.Now().Add(-s.rateLimitWindow))
	switch {
	case err != nil:
		s.log.Logf("[ERROR] failed to clean up rate limiter: %v", err)
	case removed > 0:
		s.log.Logf("[DEBUG] removed %d expired rate limiter counters", removed)
	}
}
