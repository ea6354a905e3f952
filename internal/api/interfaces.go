package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"news_radar/internal/domain"
)

type ConfigStore interface {
	Create(ctx context.Context, cfg *domain.SearchConfig) error
	GetByID(ctx context.Context, id int64) (*domain.SearchConfig, error)
	ListActive(ctx context.Context) ([]domain.SearchConfig, error)
	Update(ctx context.Context, cfg *domain.SearchConfig) error
	Delete(ctx context.Context, id int64) error
	TouchLastExecuted(ctx context.Context, id int64, at time.Time) error
}

type ArticleStore interface {
	CreateOrGet(ctx context.Context, article *domain.Article) (*domain.Article, domain.WriteOutcome, error)
	ListByConfig(ctx context.Context, configID int64) ([]domain.Article, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Article, error)
}

type UserStore interface {
	GetOrCreate(ctx context.Context, username, email string) (*domain.User, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Dispatcher interface {
	Submit(name string, task func(ctx context.Context)) (string, error)
}

type Ingestor interface {
	Run(ctx context.Context, configID int64, apiKey string) (*domain.IngestReport, error)
}
