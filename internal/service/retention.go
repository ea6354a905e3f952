package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"news_radar/internal/domain"
)

// RetentionService purges articles older than the retention window,
// measured from ingestion time.
type RetentionService struct {
	articles ArticleStore
	days     int
	logger   *slog.Logger
}

func NewRetentionService(articles ArticleStore, days int, logger *slog.Logger) *RetentionService {
	return &RetentionService{
		articles: articles,
		days:     days,
		logger:   logger.With("component", "retention"),
	}
}

func (r *RetentionService) Sweep(ctx context.Context) (*domain.RetentionReport, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -r.days)

	deleted, err := r.articles.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("delete articles before %s: %w", cutoff.Format(time.RFC3339), err)
	}

	r.logger.Info("retention sweep completed", "deleted", deleted, "cutoff", cutoff)

	return &domain.RetentionReport{Deleted: deleted, Cutoff: cutoff}, nil
}
