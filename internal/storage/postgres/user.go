package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"news_radar/internal/domain"
)

type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

// GetOrCreate returns the user with the given username, creating it with
// the supplied email when absent.
func (s *UserStore) GetOrCreate(ctx context.Context, username, email string) (*domain.User, error) {
	var user domain.User
	err := sqlx.GetContext(ctx, getExecutor(ctx, s.db), &user,
		"SELECT id, username, email, created_at FROM users WHERE username = $1",
		username,
	)
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	query := `
		INSERT INTO users (username, email)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
		RETURNING id, username, email, created_at`

	if err := sqlx.GetContext(ctx, getExecutor(ctx, s.db), &user, query, username, email); err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user together with its configurations and their
// articles inside the caller's transaction scope.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	exec := getExecutor(ctx, s.db)

	_, err := exec.ExecContext(ctx, `
		DELETE FROM articles
		WHERE search_config_id IN (SELECT id FROM search_configs WHERE user_id = $1)`,
		id,
	)
	if err != nil {
		return err
	}

	if _, err := exec.ExecContext(ctx, "DELETE FROM search_configs WHERE user_id = $1", id); err != nil {
		return err
	}

	res, err := exec.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
