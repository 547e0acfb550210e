// Package services contains the server-side business logic. AuthService is
// the orchestrator coordinating registration, login, token refresh, password
// reset and account maintenance against the credential, session and
// reset-token stores and the token issuer.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/travelguru/travelguru/internal/common"
	"github.com/travelguru/travelguru/internal/dbx"
	"github.com/travelguru/travelguru/internal/mailx"
	"github.com/travelguru/travelguru/internal/server/auth"
	"github.com/travelguru/travelguru/internal/server/config"
	"github.com/travelguru/travelguru/internal/server/models"
	"github.com/travelguru/travelguru/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService provides the authentication operations:
//   - Register / Login / Validate / Refresh
//   - RequestPasswordReset / ResetPassword / UpdatePassword
//   - UpdateUser / DeleteUser
type AuthService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	mailer                       mailx.Mailer
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	resetTokenValidityDuration   time.Duration
	bcryptCost                   int
	frontendURL                  string
}

// NewAuthService constructs an AuthService using repositories, the mail
// collaborator and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, mailer mailx.Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                           db,
		repomanager:                  m,
		mailer:                       mailer,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		resetTokenValidityDuration:   cfg.ResetTokenValidityDuration,
		bcryptCost:                   cfg.BcryptCost,
		frontendURL:                  cfg.FrontendURL,
	}
}

// Login verifies the credentials and, on success, returns a fresh token pair
// after atomically replacing any existing session for the user. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn a comparison anyway so unknown-user and wrong-password
			// answer in similar time
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrInvalidCredentials
	}

	return s.issueSession(ctx, user.UserName, user.Role)
}

// Validate verifies an access token and returns the identity it carries.
func (s *AuthService) Validate(ctx context.Context, accessToken string) (*auth.Identity, error) {
	return auth.ParseToken(accessToken, s.jwtSecret)
}

// Refresh verifies the presented refresh token, cross-checks it against the
// stored session and rotates the session: a token revoked by a later login
// (or by logout) cannot refresh even while its signature is still valid.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	identity, err := auth.ParseToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	session, err := s.repomanager.Sessions(s.db).FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrorInternal
	}
	if session.UserName != identity.UserName {
		return nil, common.ErrInvalidToken
	}
	if session.ExpiresAt.Before(time.Now()) {
		return nil, common.ErrTokenExpired
	}

	return s.issueSession(ctx, identity.UserName, identity.Role)
}

// dummyHash is a bcrypt hash of an unguessable throwaway value, used only to
// equalize timing on the unknown-user path.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// issueSession mints a {sub, role} access/refresh pair and replaces the
// user's sessions with exactly one row bound to the new refresh token. The
// user row is locked for the duration of the transaction so concurrent
// logins and refreshes for one username serialize at the session store.
func (s *AuthService) issueSession(ctx context.Context, username, role string) (*TokenPair, error) {
	access, err := auth.GenerateToken(username, role, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := auth.GenerateToken(username, role, s.jwtSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	session := &models.Session{
		ID:           uuid.NewString(),
		UserName:     username,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(s.refreshTokenValidityDuration),
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).GetByUsernameForUpdate(ctx, username); err != nil {
			return err
		}
		return s.repomanager.Sessions(tx).Replace(ctx, session)
	}); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", common.ErrorInternal
	}
	return string(hash), nil
}

func sanitize(user *models.User) *models.User {
	clean := *user
	clean.PasswordHash = ""
	return &clean
}
