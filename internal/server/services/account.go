package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/travelguru/travelguru/internal/common"
	"github.com/travelguru/travelguru/internal/dbx"
	"github.com/travelguru/travelguru/internal/server/models"
)

// UpdateUser merges the whitelisted fields onto the user row. The username
// itself is not updatable; callers are assumed to have already verified the
// acting identity matches the target.
func (s *AuthService) UpdateUser(ctx context.Context, username string, upd *models.UserUpdate) (*models.User, error) {
	if upd.Empty() {
		user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, err
			}
			return nil, common.ErrorInternal
		}
		return sanitize(user), nil
	}

	user, err := s.repomanager.Users(s.db).Update(ctx, username, upd)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound),
			errors.Is(err, common.ErrDuplicateEmail):
			return nil, err
		default:
			return nil, common.ErrorInternal
		}
	}
	return sanitize(user), nil
}

// DeleteUser removes the account after an explicit confirmation. Sessions go
// first, then the user row, in one transaction.
func (s *AuthService) DeleteUser(ctx context.Context, username string, confirmDelete bool) error {
	if !confirmDelete {
		return common.ErrMissingConfirmation
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Sessions(tx).DeleteForUser(ctx, username); err != nil {
			return err
		}
		return s.repomanager.Users(tx).Delete(ctx, username)
	}); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return common.ErrorInternal
	}
	return nil
}

// UpdatePassword changes the password of an authenticated user after
// re-verifying the old one.
func (s *AuthService) UpdatePassword(ctx context.Context, username, oldPassword, newPassword, confirmPassword string) error {
	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return common.ErrorUnauthorized
	}

	ve := common.NewValidationError()
	if newPassword != confirmPassword {
		ve.Add("password", "new passwords do not match")
	}
	if len(newPassword) < 8 {
		ve.Add("password", "password must be at least 8 characters long")
	}
	if !ve.Empty() {
		return ve
	}

	hash, err := s.hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.repomanager.Users(s.db).UpdatePassword(ctx, username, hash); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return common.ErrorInternal
	}
	return nil
}
