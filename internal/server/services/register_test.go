package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/travelguru/travelguru/internal/common"
	"github.com/travelguru/travelguru/internal/server/models"
)

func TestRegisterSuccess(t *testing.T) {
	svc, m, _ := newTestService(t)

	user := registerUser(t, svc, validRegisterRequest())

	assert.Equal(t, "alice", user.UserName)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Empty(t, user.PasswordHash, "password hash must not leave the service")

	stored, err := m.Users(nil).GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correcthorse")))
	assert.NotEqual(t, "correcthorse", stored.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
		fields []string
	}{
		{
			name:   "password mismatch",
			mutate: func(r *RegisterRequest) { r.ConfirmPassword = "different" },
			fields: []string{"password"},
		},
		{
			name: "password too short",
			mutate: func(r *RegisterRequest) {
				r.Password = "short"
				r.ConfirmPassword = "short"
			},
			fields: []string{"password"},
		},
		{
			name:   "bad email",
			mutate: func(r *RegisterRequest) { r.Email = "not-an-email" },
			fields: []string{"email"},
		},
		{
			name:   "phone too short",
			mutate: func(r *RegisterRequest) { r.Phone = "12345" },
			fields: []string{"phone"},
		},
		{
			name:   "phone not numeric",
			mutate: func(r *RegisterRequest) { r.Phone = "555000123x" },
			fields: []string{"phone"},
		},
		{
			name:   "admin role rejected",
			mutate: func(r *RegisterRequest) { r.Role = models.RoleAdmin },
			fields: []string{"role"},
		},
		{
			name: "multiple violations reported together",
			mutate: func(r *RegisterRequest) {
				r.Email = "nope"
				r.Phone = "1"
				r.ConfirmPassword = "different"
			},
			fields: []string{"email", "password", "phone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(t)
			req := validRegisterRequest()
			tt.mutate(req)

			_, err := svc.Register(context.Background(), req)
			require.Error(t, err)

			var ve *common.ValidationError
			require.ErrorAs(t, err, &ve)
			for _, field := range tt.fields {
				assert.Contains(t, ve.Fields, field)
			}
			assert.Len(t, ve.Fields, len(tt.fields))
		})
	}
}

func TestRegisterDuplicates(t *testing.T) {
	svc, _, _ := newTestService(t)
	registerUser(t, svc, validRegisterRequest())

	t.Run("duplicate email", func(t *testing.T) {
		req := validRegisterRequest()
		req.UserName = "alice2"
		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, common.ErrDuplicateEmail)
	})

	t.Run("duplicate username", func(t *testing.T) {
		req := validRegisterRequest()
		req.Email = "alice2@example.com"
		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, common.ErrDuplicateUsername)
	})
}

func TestRegisterValidatesBeforeDuplicateCheck(t *testing.T) {
	svc, _, _ := newTestService(t)
	registerUser(t, svc, validRegisterRequest())

	// same email as the existing user, but the malformed phone must win:
	// validation answers first so bad input learns nothing about taken
	// addresses
	req := validRegisterRequest()
	req.UserName = "alice2"
	req.Phone = "bad"

	_, err := svc.Register(context.Background(), req)
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "phone")
}
