package service

import (
	"context"
	"fmt"
	"log/slog"

	"news_radar/internal/domain"
)

// FanoutService submits one ingestion job per active configuration.
// It is fire-and-forget: the summary acknowledges submissions, never
// job outcomes. It applies no rate limiting across configurations.
type FanoutService struct {
	configs    SearchConfigStore
	ingest     Ingestor
	dispatcher Dispatcher
	logger     *slog.Logger
}

func NewFanoutService(
	configs SearchConfigStore,
	ingest Ingestor,
	dispatcher Dispatcher,
	logger *slog.Logger,
) *FanoutService {
	return &FanoutService{
		configs:    configs,
		ingest:     ingest,
		dispatcher: dispatcher,
		logger:     logger.With("component", "fanout"),
	}
}

// ScheduleAll enqueues an ingestion run for every active configuration
// and returns immediately with per-config acknowledgments.
func (f *FanoutService) ScheduleAll(ctx context.Context, apiKey string) (*domain.FanoutSummary, error) {
	active, err := f.configs.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active configs: %w", err)
	}

	if len(active) == 0 {
		f.logger.Info("no active configurations")
		return &domain.FanoutSummary{}, nil
	}

	summary := &domain.FanoutSummary{}
	for _, cfg := range active {
		configID := cfg.ID
		jobID, err := f.dispatcher.Submit(
			fmt.Sprintf("ingest-config-%d", configID),
			func(jobCtx context.Context) {
				if _, err := f.ingest.Run(jobCtx, configID, apiKey); err != nil {
					f.logger.Error("ingestion job failed", "config_id", configID, "error", err)
				}
			},
		)
		if err != nil {
			f.logger.Error("failed to submit ingestion job", "config_id", configID, "error", err)
			continue
		}

		f.logger.Info("scheduled ingestion", "config_id", configID, "name", cfg.Name, "job_id", jobID)
		summary.Scheduled = append(summary.Scheduled, domain.ScheduledJob{
			ConfigID:   configID,
			ConfigName: cfg.Name,
			JobID:      jobID,
		})
	}
	summary.Processed = len(summary.Scheduled)

	return summary, nil
}
