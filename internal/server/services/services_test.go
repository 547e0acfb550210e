package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/travelguru/travelguru/internal/mailx"
	"github.com/travelguru/travelguru/internal/server/config"
	"github.com/travelguru/travelguru/internal/server/models"
	"github.com/travelguru/travelguru/internal/server/repositories/repomanager"
)

// recordingMailer captures outbound messages instead of delivering them.
type recordingMailer struct {
	mu   sync.Mutex
	sent []mailx.Message
	err  error
}

func (m *recordingMailer) Send(ctx context.Context, msg mailx.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) messages() []mailx.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mailx.Message, len(m.sent))
	copy(out, m.sent)
	return out
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "test-secret",
		AccessTokenValidityDuration:  15 * time.Minute,
		RefreshTokenValidityDuration: 168 * time.Hour,
		ResetTokenValidityDuration:   5 * time.Minute,
		BcryptCost:                   4,
		FrontendURL:                  "http://localhost:3000",
	}
}

// newMockDB returns a *sql.DB whose Begin/Commit/Rollback calls all succeed,
// so transactional service paths can run against the in-memory stores.
func newMockDB(t *testing.T) *sql.DB {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 32; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectRollback()
	}
	return db
}

func newTestService(t *testing.T) (*AuthService, *repomanager.InMemoryRepositoryManager, *recordingMailer) {
	t.Helper()
	m := repomanager.NewInMemoryRepositoryManager()
	mailer := &recordingMailer{}
	svc := NewAuthService(newMockDB(t), m, mailer, testConfig())
	return svc, m, mailer
}

func validRegisterRequest() *RegisterRequest {
	return &RegisterRequest{
		Email:           "alice@example.com",
		UserName:        "alice",
		FirstName:       "Alice",
		LastName:        "Anderson",
		Password:        "correcthorse",
		ConfirmPassword: "correcthorse",
		Phone:           "5550001234",
		Role:            models.RoleUser,
	}
}

func registerUser(t *testing.T, svc *AuthService, req *RegisterRequest) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	return user
}
