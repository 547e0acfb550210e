// Package sessions provides the PostgreSQL-backed refresh-session store.
package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/travelguru/travelguru/internal/common"
	"github.com/travelguru/travelguru/internal/dbx"
	"github.com/travelguru/travelguru/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Replace(ctx context.Context, session *models.Session) error {
	deleteQuery := `DELETE FROM user_sessions WHERE username = $1`
	if _, err := r.db.ExecContext(ctx, deleteQuery, session.UserName); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	insertQuery := `
		INSERT INTO user_sessions (session_id, username, refresh_token, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, insertQuery,
		session.ID, session.UserName, session.RefreshToken, session.ExpiresAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func scanSession(row *sql.Row) (*models.Session, error) {
	s := &models.Session{}
	err := row.Scan(&s.ID, &s.UserName, &s.RefreshToken, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (*models.Session, error) {
	query := `
		SELECT session_id, username, refresh_token, expires_at, created_at
		FROM user_sessions
		WHERE username = $1
	`
	return scanSession(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) FindByToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	query := `
		SELECT session_id, username, refresh_token, expires_at, created_at
		FROM user_sessions
		WHERE refresh_token = $1
	`
	return scanSession(r.db.QueryRowContext(ctx, query, refreshToken))
}

func (r *PostgresRepository) DeleteForUser(ctx context.Context, username string) error {
	query := `DELETE FROM user_sessions WHERE username = $1`
	if _, err := r.db.ExecContext(ctx, query, username); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
