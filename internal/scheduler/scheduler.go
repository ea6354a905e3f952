package scheduler

import (
	"context"
	"log/slog"
	"time"

	"news_radar/internal/domain"
)

// Fanout schedules one ingestion run per active configuration.
type Fanout interface {
	ScheduleAll(ctx context.Context, apiKey string) (*domain.FanoutSummary, error)
}

// Retention purges articles past the retention window.
type Retention interface {
	Sweep(ctx context.Context) (*domain.RetentionReport, error)
}

// Scheduler drives the fan-out on one ticker and the retention sweep on
// another, slower one.
type Scheduler struct {
	fanout            Fanout
	retention         Retention
	fanoutInterval    time.Duration
	retentionInterval time.Duration
	logger            *slog.Logger
}

func NewScheduler(
	fanout Fanout,
	retention Retention,
	fanoutInterval time.Duration,
	retentionInterval time.Duration,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		fanout:            fanout,
		retention:         retention,
		fanoutInterval:    fanoutInterval,
		retentionInterval: retentionInterval,
		logger:            logger.With("component", "scheduler"),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started",
		"fanout_interval", s.fanoutInterval,
		"retention_interval", s.retentionInterval,
	)

	s.runFanout(ctx)

	fanoutTicker := time.NewTicker(s.fanoutInterval)
	defer fanoutTicker.Stop()

	retentionTicker := time.NewTicker(s.retentionInterval)
	defer retentionTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-fanoutTicker.C:
			s.runFanout(ctx)
		case <-retentionTicker.C:
			s.runRetention(ctx)
		}
	}
}

func (s *Scheduler) runFanout(ctx context.Context) {
	fanoutCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	summary, err := s.fanout.ScheduleAll(fanoutCtx, "")
	if err != nil {
		s.logger.Error("fan-out failed", "error", err)
		return
	}
	s.logger.Info("fan-out completed", "configs_processed", summary.Processed)
}

func (s *Scheduler) runRetention(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	if _, err := s.retention.Sweep(sweepCtx); err != nil {
		s.logger.Error("retention sweep failed", "error", err)
	}
}
