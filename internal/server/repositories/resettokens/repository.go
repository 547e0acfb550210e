package resettokens

import (
	"context"
	"time"

	"github.com/travelguru/travelguru/internal/server/models"
)

// Repository is the password-reset token store. Only token hashes pass
// through this interface; raw secrets never reach the database.
type Repository interface {
	Create(ctx context.Context, username string, tokenHash string, validity time.Duration) error
	FindByHash(ctx context.Context, tokenHash string) (*models.ResetToken, error)
	// Consume flips the used flag exactly once. A second call with the same
	// hash returns common.ErrorNotFound, so concurrent consumers cannot both
	// succeed.
	Consume(ctx context.Context, tokenHash string) error
}
