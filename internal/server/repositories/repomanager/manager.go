package repomanager

import (
	"context"
	"database/sql"

	"github.com/travelguru/travelguru/internal/dbx"
	"github.com/travelguru/travelguru/internal/server/repositories/resettokens"
	"github.com/travelguru/travelguru/internal/server/repositories/sessions"
	"github.com/travelguru/travelguru/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX. Passing a *sql.Tx
// yields repositories that take part in that transaction; passing the *sql.DB
// yields autocommit ones.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	ResetTokens(db dbx.DBTX) resettokens.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
