package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"news_radar/internal/domain"
	"news_radar/internal/source/newsapi"
)

// IngestService executes one fetch-and-store cycle per invocation.
//
// Terminal conditions (missing/inactive config, missing credential,
// provider-reported error) come back as reports so callers do not retry
// them; only transport failures and storage errors surface as errors.
type IngestService struct {
	configs       SearchConfigStore
	articles      ArticleStore
	provider      Provider
	publisher     Publisher
	defaultAPIKey string
	logger        *slog.Logger
}

// NewIngestService wires the pipeline. The default API key is injected
// here; core logic never reads ambient state. publisher may be nil.
func NewIngestService(
	configs SearchConfigStore,
	articles ArticleStore,
	provider Provider,
	publisher Publisher,
	defaultAPIKey string,
	logger *slog.Logger,
) *IngestService {
	return &IngestService{
		configs:       configs,
		articles:      articles,
		provider:      provider,
		publisher:     publisher,
		defaultAPIKey: defaultAPIKey,
		logger:        logger.With("component", "ingest"),
	}
}

// Run fetches headlines for one configuration and stores them, dedup'd
// by URL. An explicit apiKey overrides the injected default.
func (s *IngestService) Run(ctx context.Context, configID int64, apiKey string) (*domain.IngestReport, error) {
	cfg, err := s.configs.GetByID(ctx, configID)
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Error("configuration not found", "config_id", configID)
		return &domain.IngestReport{
			ConfigID: configID,
			Status:   domain.StatusConfigUnavailable,
			Message:  "configuration not found",
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config %d: %w", configID, err)
	}
	if !cfg.IsActive {
		s.logger.Error("configuration inactive", "config_id", configID, "name", cfg.Name)
		return &domain.IngestReport{
			ConfigID:   configID,
			ConfigName: cfg.Name,
			Status:     domain.StatusConfigUnavailable,
			Message:    "configuration inactive",
		}, nil
	}

	key := apiKey
	if key == "" {
		key = s.defaultAPIKey
	}
	if key == "" {
		s.logger.Error("no provider API key configured", "config_id", configID)
		return &domain.IngestReport{
			ConfigID:   configID,
			ConfigName: cfg.Name,
			Status:     domain.StatusCredentialMissing,
			Message:    "no provider API key configured",
		}, nil
	}

	s.logger.Info("fetching headlines", "config_id", configID, "name", cfg.Name)

	records, err := s.provider.TopHeadlines(ctx, newsapi.QueryFor(cfg), key)
	if err != nil {
		var statusErr *newsapi.StatusError
		if errors.As(err, &statusErr) {
			s.logger.Error("provider rejected request",
				"config_id", configID,
				"code", statusErr.Code,
				"message", statusErr.Message,
			)
			return &domain.IngestReport{
				ConfigID:   configID,
				ConfigName: cfg.Name,
				Status:     domain.StatusProviderError,
				Message:    statusErr.Message,
			}, nil
		}
		return nil, fmt.Errorf("fetch headlines for config %d: %w", configID, err)
	}

	report := &domain.IngestReport{
		ConfigID:   configID,
		ConfigName: cfg.Name,
		Status:     domain.StatusSuccess,
		Total:      len(records),
	}

	for _, record := range records {
		article, err := record.ToArticle(cfg.ID)
		if err != nil {
			report.Errors++
			s.logger.Warn("skipping malformed record", "url", record.URL, "error", err)
			continue
		}

		stored, outcome, err := s.articles.CreateOrGet(ctx, article)
		if err != nil {
			report.Errors++
			s.logger.Warn("skipping record on store failure", "url", article.URL, "error", err)
			continue
		}

		if outcome == domain.OutcomeDuplicate {
			report.Duplicates++
			s.logger.Debug("duplicate article", "url", stored.URL)
			continue
		}

		report.Created++
		s.logger.Debug("created article", "url", stored.URL, "title", stored.Title)

		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, stored); err != nil {
				s.logger.Warn("publish failed", "url", stored.URL, "error", err)
			}
		}
	}

	// Unconditional once the write loop finished, even when every record
	// was a duplicate or failed.
	if err := s.configs.TouchLastExecuted(ctx, cfg.ID, time.Now().UTC()); err != nil {
		return report, fmt.Errorf("update last executed for config %d: %w", configID, err)
	}

	s.logger.Info("ingestion completed",
		"config_id", configID,
		"name", cfg.Name,
		"total", report.Total,
		"created", report.Created,
		"duplicates", report.Duplicates,
		"errors", report.Errors,
	)

	return report, nil
}
