package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"news_radar/internal/domain"
)

const configColumns = `
	id, user_id, name, keywords, country, category, sources,
	domains, exclude_domains, language, sort_by, frequency,
	is_active, created_at, updated_at, last_executed`

type SearchConfigStore struct {
	db *sqlx.DB
}

func NewSearchConfigStore(db *sqlx.DB) *SearchConfigStore {
	return &SearchConfigStore{db: db}
}

func (s *SearchConfigStore) Create(ctx context.Context, cfg *domain.SearchConfig) error {
	query := `
		INSERT INTO search_configs (
			user_id, name, keywords, country, category, sources,
			domains, exclude_domains, language, sort_by, frequency, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	return getExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		cfg.UserID,
		cfg.Name,
		cfg.Keywords,
		cfg.Country,
		cfg.Category,
		cfg.Sources,
		cfg.Domains,
		cfg.ExcludeDomains,
		cfg.Language,
		cfg.SortBy,
		cfg.Frequency,
		cfg.IsActive,
	).Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt)
}

func (s *SearchConfigStore) GetByID(ctx context.Context, id int64) (*domain.SearchConfig, error) {
	var cfg domain.SearchConfig
	err := sqlx.GetContext(ctx, getExecutor(ctx, s.db), &cfg,
		"SELECT "+configColumns+" FROM search_configs WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *SearchConfigStore) ListActive(ctx context.Context) ([]domain.SearchConfig, error) {
	var configs []domain.SearchConfig
	err := sqlx.SelectContext(ctx, getExecutor(ctx, s.db), &configs,
		"SELECT "+configColumns+" FROM search_configs WHERE is_active ORDER BY created_at DESC")
	return configs, err
}

func (s *SearchConfigStore) Update(ctx context.Context, cfg *domain.SearchConfig) error {
	query := `
		UPDATE search_configs SET
			name = $2, keywords = $3, country = $4, category = $5,
			sources = $6, domains = $7, exclude_domains = $8, language = $9,
			sort_by = $10, frequency = $11, is_active = $12, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := getExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		cfg.ID,
		cfg.Name,
		cfg.Keywords,
		cfg.Country,
		cfg.Category,
		cfg.Sources,
		cfg.Domains,
		cfg.ExcludeDomains,
		cfg.Language,
		cfg.SortBy,
		cfg.Frequency,
		cfg.IsActive,
	).Scan(&cfg.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

// Delete removes a configuration and its articles. Articles go first so
// the whole cascade sits inside one transaction when the caller wraps it
// with the transaction manager; the schema FK cascade is a backstop only.
func (s *SearchConfigStore) Delete(ctx context.Context, id int64) error {
	exec := getExecutor(ctx, s.db)

	if _, err := exec.ExecContext(ctx, "DELETE FROM articles WHERE search_config_id = $1", id); err != nil {
		return err
	}

	res, err := exec.ExecContext(ctx, "DELETE FROM search_configs WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// TouchLastExecuted persists only the last_executed field; the ingest
// pipeline calls this after its write loop regardless of per-record
// outcomes. Concurrent runs for one config are last-write-wins.
func (s *SearchConfigStore) TouchLastExecuted(ctx context.Context, id int64, at time.Time) error {
	res, err := getExecutor(ctx, s.db).ExecContext(ctx,
		"UPDATE search_configs SET last_executed = $2 WHERE id = $1", id, at)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
