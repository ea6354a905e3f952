package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"news_radar/internal/domain"
)

const articleColumns = `
	id, search_config_id, title, description, url, url_to_image,
	published_at, content, source_id, source_name, author, created_at, is_read`

type ArticleStore struct {
	db *sqlx.DB
}

func NewArticleStore(db *sqlx.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// CreateOrGet inserts the article unless its URL is already stored. On a
// URL collision the existing row is returned untouched (first-write-wins),
// whichever configuration it belongs to.
func (s *ArticleStore) CreateOrGet(ctx context.Context, article *domain.Article) (*domain.Article, domain.WriteOutcome, error) {
	exec := getExecutor(ctx, s.db)

	query := `
		INSERT INTO articles (
			search_config_id, title, description, url, url_to_image,
			published_at, content, source_id, source_name, author, is_read
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (url) DO NOTHING
		RETURNING id, created_at, is_read`

	err := exec.QueryRowxContext(ctx, query,
		article.SearchConfigID,
		article.Title,
		article.Description,
		article.URL,
		article.URLToImage,
		article.PublishedAt,
		article.Content,
		article.SourceID,
		article.SourceName,
		article.Author,
		article.IsRead,
	).Scan(&article.ID, &article.CreatedAt, &article.IsRead)

	if err == nil {
		return article, domain.OutcomeCreated, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, domain.OutcomeDuplicate, err
	}

	var existing domain.Article
	err = sqlx.GetContext(ctx, exec, &existing,
		"SELECT "+articleColumns+" FROM articles WHERE url = $1", article.URL)
	if err != nil {
		return nil, domain.OutcomeDuplicate, err
	}
	return &existing, domain.OutcomeDuplicate, nil
}

func (s *ArticleStore) ListByConfig(ctx context.Context, configID int64) ([]domain.Article, error) {
	var articles []domain.Article
	err := sqlx.SelectContext(ctx, getExecutor(ctx, s.db), &articles,
		"SELECT "+articleColumns+" FROM articles WHERE search_config_id = $1 ORDER BY published_at DESC",
		configID,
	)
	return articles, err
}

func (s *ArticleStore) ListRecent(ctx context.Context, limit int) ([]domain.Article, error) {
	var articles []domain.Article
	err := sqlx.SelectContext(ctx, getExecutor(ctx, s.db), &articles,
		"SELECT "+articleColumns+" FROM articles ORDER BY published_at DESC LIMIT $1",
		limit,
	)
	return articles, err
}

// DeleteOlderThan removes articles created strictly before cutoff and
// returns the count deleted. Measured on ingestion time, not publish time.
func (s *ArticleStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := getExecutor(ctx, s.db).ExecContext(ctx,
		"DELETE FROM articles WHERE created_at < $1", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
