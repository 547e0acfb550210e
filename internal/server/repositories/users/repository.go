package users

import (
	"context"

	"github.com/travelguru/travelguru/internal/server/models"
)

// Repository is the credential store consumed by the auth orchestrator.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// GetByUsernameForUpdate locks the row until the surrounding transaction
	// ends, serializing session replacement for one user.
	GetByUsernameForUpdate(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, username string, upd *models.UserUpdate) (*models.User, error)
	UpdatePassword(ctx context.Context, username string, passwordHash string) error
	Delete(ctx context.Context, username string) error
}
