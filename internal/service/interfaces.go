package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"net/url"
	"time"

	"news_radar/internal/domain"
	"news_radar/internal/source/newsapi"
)

type SearchConfigStore interface {
	GetByID(ctx context.Context, id int64) (*domain.SearchConfig, error)
	ListActive(ctx context.Context) ([]domain.SearchConfig, error)
	TouchLastExecuted(ctx context.Context, id int64, at time.Time) error
}

type ArticleStore interface {
	CreateOrGet(ctx context.Context, article *domain.Article) (*domain.Article, domain.WriteOutcome, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type Provider interface {
	TopHeadlines(ctx context.Context, query url.Values, apiKey string) ([]newsapi.Record, error)
}

type Publisher interface {
	Publish(ctx context.Context, article *domain.Article) error
	Close() error
}

// Dispatcher accepts independent units of work; Submit returns a job
// handle without waiting for execution.
type Dispatcher interface {
	Submit(name string, task func(ctx context.Context)) (string, error)
}

type Ingestor interface {
	Run(ctx context.Context, configID int64, apiKey string) (*domain.IngestReport, error)
}
