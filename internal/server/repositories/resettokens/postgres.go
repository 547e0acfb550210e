// Package resettokens provides the PostgreSQL-backed store for time-boxed,
// single-use password-reset tokens.
package resettokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

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

func (r *PostgresRepository) Create(ctx context.Context, username string, tokenHash string, validity time.Duration) error {
	query := `
		INSERT INTO reset_password_tokens (id, username, token_hash, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query,
		uuid.NewString(), username, tokenHash, time.Now().UTC().Add(validity)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindByHash(ctx context.Context, tokenHash string) (*models.ResetToken, error) {
	query := `
		SELECT id, username, token_hash, expires_at, used, created_at
		FROM reset_password_tokens
		WHERE token_hash = $1
	`
	token := &models.ResetToken{}
	err := r.db.QueryRowContext(ctx, query, tokenHash).
		Scan(&token.ID, &token.UserName, &token.TokenHash, &token.ExpiresAt, &token.Used, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return token, nil
}

// Consume marks the token used. The NOT used predicate makes the update a
// compare-and-set: whichever concurrent caller commits first wins and every
// other one sees ErrorNotFound.
func (r *PostgresRepository) Consume(ctx context.Context, tokenHash string) error {
	query := `
		UPDATE reset_password_tokens
		SET used = TRUE
		WHERE token_hash = $1 AND NOT used
	`
	res, err := r.db.ExecContext(ctx, query, tokenHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}
