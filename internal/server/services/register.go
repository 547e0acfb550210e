package services

import (
	"context"
	"errors"
	"net/mail"

	"github.com/travelguru/travelguru/internal/common"
	"github.com/travelguru/travelguru/internal/server/models"
)

// RegisterRequest carries every registration field. Role is accepted for
// shape compatibility but a request for admin is rejected outright.
type RegisterRequest struct {
	Email           string
	UserName        string
	FirstName       string
	LastName        string
	Password        string
	ConfirmPassword string
	Phone           string
	Role            string
}

// validate runs every registration check and collects each failing field, so
// one response enumerates all violations.
func (r *RegisterRequest) validate() *common.ValidationError {
	ve := common.NewValidationError()

	if r.Password != r.ConfirmPassword {
		ve.Add("password", "passwords do not match")
	}
	if len(r.Password) < 8 {
		ve.Add("password", "password must be at least 8 characters long")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		ve.Add("email", "not a valid email address")
	}
	if !isTenDigits(r.Phone) {
		ve.Add("phone", "phone number must be 10 digits long")
	}
	if r.Role == models.RoleAdmin {
		ve.Add("role", "cannot register as admin")
	}

	return ve
}

func isTenDigits(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Register validates the request, rejects duplicate email/username, hashes
// the password and persists the new user. Validation runs before the
// duplicate checks so malformed input never learns whether an address is
// taken. The returned record carries no password hash.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	if ve := req.validate(); !ve.Empty() {
		return nil, ve
	}

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, common.ErrDuplicateEmail
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	if _, err := repo.GetByUsername(ctx, req.UserName); err == nil {
		return nil, common.ErrDuplicateUsername
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		UserName:     req.UserName,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}

	created, err := repo.Create(ctx, user)
	if err != nil {
		// the pre-insert checks race against concurrent registrations
		if errors.Is(err, common.ErrDuplicateEmail) || errors.Is(err, common.ErrDuplicateUsername) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}

	return sanitize(created), nil
}
