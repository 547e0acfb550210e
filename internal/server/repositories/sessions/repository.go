package sessions

import (
	"context"

	"github.com/travelguru/travelguru/internal/server/models"
)

// Repository is the session store. The single-session-per-user policy lives
// in Replace: callers never insert without clearing first.
type Repository interface {
	// Replace deletes every session for session.UserName and inserts the
	// given one. Run it inside a transaction holding the user row lock so
	// concurrent logins for the same user serialize.
	Replace(ctx context.Context, session *models.Session) error
	FindByUsername(ctx context.Context, username string) (*models.Session, error)
	FindByToken(ctx context.Context, refreshToken string) (*models.Session, error)
	DeleteForUser(ctx context.Context, username string) error
}
