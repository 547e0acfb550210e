package repomanager

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/travelguru/travelguru/internal/common"
	"github.com/travelguru/travelguru/internal/dbx"
	"github.com/travelguru/travelguru/internal/server/models"
	"github.com/travelguru/travelguru/internal/server/repositories/resettokens"
	"github.com/travelguru/travelguru/internal/server/repositories/sessions"
	"github.com/travelguru/travelguru/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps every store in process memory behind one
// mutex. It ignores the DBTX it is handed, so operations are atomic per call
// rather than per transaction; good enough for tests and local tinkering,
// not for production.
type InMemoryRepositoryManager struct {
	mu          sync.Mutex
	users       map[string]*models.User       // by username
	sessions    map[string]*models.Session    // by username
	resetTokens map[string]*models.ResetToken // by token hash
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:       make(map[string]*models.User),
		sessions:    make(map[string]*models.Session),
		resetTokens: make(map[string]*models.ResetToken),
	}
}

func (m *InMemoryRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return &memUsers{m: m}
}

func (m *InMemoryRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return &memSessions{m: m}
}

func (m *InMemoryRepositoryManager) ResetTokens(db dbx.DBTX) resettokens.Repository {
	return &memResetTokens{m: m}
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

// SessionCount reports how many sessions a user currently holds.
func (m *InMemoryRepositoryManager) SessionCount(username string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[username]; ok {
		return 1
	}
	return 0
}

type memUsers struct {
	m *InMemoryRepositoryManager
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func (r *memUsers) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.users[user.UserName]; ok {
		return nil, common.ErrDuplicateUsername
	}
	for _, existing := range r.m.users {
		if existing.Email == user.Email {
			return nil, common.ErrDuplicateEmail
		}
	}

	stored := copyUser(user)
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.m.users[user.UserName] = stored
	return copyUser(stored), nil
}

func (r *memUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	user, ok := r.m.users[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return copyUser(user), nil
}

func (r *memUsers) GetByUsernameForUpdate(ctx context.Context, username string) (*models.User, error) {
	return r.GetByUsername(ctx, username)
}

func (r *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, user := range r.m.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsers) Update(ctx context.Context, username string, upd *models.UserUpdate) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	user, ok := r.m.users[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if upd.Email != nil {
		for name, existing := range r.m.users {
			if name != username && existing.Email == *upd.Email {
				return nil, common.ErrDuplicateEmail
			}
		}
		user.Email = *upd.Email
	}
	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
	}
	if upd.Phone != nil {
		user.Phone = *upd.Phone
	}
	user.UpdatedAt = time.Now()
	return copyUser(user), nil
}

func (r *memUsers) UpdatePassword(ctx context.Context, username string, passwordHash string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	user, ok := r.m.users[username]
	if !ok {
		return common.ErrorNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()
	return nil
}

func (r *memUsers) Delete(ctx context.Context, username string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.users[username]; !ok {
		return common.ErrorNotFound
	}
	delete(r.m.users, username)
	delete(r.m.sessions, username)
	return nil
}

type memSessions struct {
	m *InMemoryRepositoryManager
}

func (r *memSessions) Replace(ctx context.Context, session *models.Session) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	stored := *session
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.CreatedAt = time.Now()
	r.m.sessions[session.UserName] = &stored
	return nil
}

func (r *memSessions) FindByUsername(ctx context.Context, username string) (*models.Session, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	session, ok := r.m.sessions[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *session
	return &c, nil
}

func (r *memSessions) FindByToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, session := range r.m.sessions {
		if session.RefreshToken == refreshToken {
			c := *session
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memSessions) DeleteForUser(ctx context.Context, username string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	delete(r.m.sessions, username)
	return nil
}

type memResetTokens struct {
	m *InMemoryRepositoryManager
}

func (r *memResetTokens) Create(ctx context.Context, username string, tokenHash string, validity time.Duration) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	r.m.resetTokens[tokenHash] = &models.ResetToken{
		ID:        uuid.NewString(),
		UserName:  username,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().UTC().Add(validity),
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

func (r *memResetTokens) FindByHash(ctx context.Context, tokenHash string) (*models.ResetToken, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	token, ok := r.m.resetTokens[tokenHash]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *token
	return &c, nil
}

func (r *memResetTokens) Consume(ctx context.Context, tokenHash string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	token, ok := r.m.resetTokens[tokenHash]
	if !ok || token.Used {
		return common.ErrorNotFound
	}
	token.Used = true
	return nil
}

// ExpireResetToken backdates a stored token, for tests exercising expiry.
func (m *InMemoryRepositoryManager) ExpireResetToken(tokenHash string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if token, ok := m.resetTokens[tokenHash]; ok {
		token.ExpiresAt = time.Now().UTC().Add(-time.Second)
	}
}
