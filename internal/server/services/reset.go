package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/travelguru/travelguru/internal/common"
	"github.com/travelguru/travelguru/internal/dbx"
	"github.com/travelguru/travelguru/internal/mailx"
)

const resetSecretBytes = 32

// RequestPasswordReset starts the reset flow for the account registered
// under email. An unknown address returns success without sending anything,
// so callers cannot probe which emails are registered. For a known address a
// random URL-safe secret is generated, only its hash is stored (with a short
// expiry) and the raw secret is emailed as a link.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return common.ErrorInternal
	}

	secret, err := common.MakeRandURLSafeString(resetSecretBytes)
	if err != nil {
		return common.ErrorInternal
	}

	if err := s.repomanager.ResetTokens(s.db).
		Create(ctx, user.UserName, common.HashToken(secret), s.resetTokenValidityDuration); err != nil {
		return common.ErrorInternal
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, secret)

	msg := mailx.Message{
		To:      email,
		Subject: "Password Reset Request",
		Text:    fmt.Sprintf("Click the link to reset your password: %s", resetLink),
		HTML:    fmt.Sprintf("<p>Click the link to reset your password: <a href='%s'>Reset Password</a></p>", resetLink),
	}
	return s.mailer.Send(ctx, msg)
}

// ResetPassword completes the reset flow: it checks the request shape,
// resolves the raw secret to a stored token by hash, rejects consumed and
// expired tokens, and then overwrites the password hash and consumes the
// token inside one transaction. A reset can never succeed while leaving the
// token reusable.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword, confirmPassword string) error {
	if rawToken == "" || newPassword == "" || confirmPassword == "" {
		return common.ErrMissingFields
	}

	ve := common.NewValidationError()
	if newPassword != confirmPassword {
		ve.Add("password", "passwords do not match")
	}
	if len(newPassword) < 8 {
		ve.Add("password", "password must be at least 8 characters long")
	}
	if !ve.Empty() {
		return ve
	}

	tokenHash := common.HashToken(rawToken)

	token, err := s.repomanager.ResetTokens(s.db).FindByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidToken
		}
		return common.ErrorInternal
	}
	if token.Used {
		return common.ErrInvalidToken
	}
	if token.ExpiresAt.UTC().Before(time.Now().UTC()) {
		return common.ErrTokenExpired
	}

	hash, err := s.hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).UpdatePassword(ctx, token.UserName, hash); err != nil {
			return err
		}
		// losing this compare-and-set means another consumer spent the
		// token first
		if err := s.repomanager.ResetTokens(tx).Consume(ctx, tokenHash); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return err
		}
		return nil
	}); err != nil {
		if errors.Is(err, common.ErrInvalidToken) || errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return common.ErrorInternal
	}

	return nil
}
