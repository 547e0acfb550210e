package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelguru/travelguru/internal/common"
	"github.com/travelguru/travelguru/internal/server/models"
)

func strptr(s string) *string { return &s }

func TestUpdateUserPartial(t *testing.T) {
	svc, _, _ := newTestService(t)
	registerUser(t, svc, validRegisterRequest())

	user, err := svc.UpdateUser(context.Background(), "alice", &models.UserUpdate{
		FirstName: strptr("Alicia"),
		Phone:     strptr("5559998888"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Alicia", user.FirstName)
	assert.Equal(t, "5559998888", user.Phone)
	assert.Equal(t, "Anderson", user.LastName, "untouched fields keep their value")
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)
}

func TestUpdateUserEmptyUpdate(t *testing.T) {
	svc, _, _ := newTestService(t)
	registerUser(t, svc, validRegisterRequest())

	user, err := svc.UpdateUser(context.Background(), "alice", &models.UserUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.UserName)
	assert.Equal(t, "Alice", user.FirstName)
}

func TestUpdateUserErrors(t *testing.T) {
	svc, _, _ := newTestService(t)
	registerUser(t, svc, validRegisterRequest())

	bob := validRegisterRequest()
	bob.UserName = "bob"
	bob.Email = "bob@example.com"
	registerUser(t, svc, bob)

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.UpdateUser(context.Background(), "nobody", &models.UserUpdate{FirstName: strptr("X")})
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("email taken", func(t *testing.T) {
		_, err := svc.UpdateUser(context.Background(), "bob", &models.UserUpdate{Email: strptr("alice@example.com")})
		assert.ErrorIs(t, err, common.ErrDuplicateEmail)
	})
}

func TestDeleteUser(t *testing.T) {
	svc, m, _ := newTestService(t)
	registerUser(t, svc, validRegisterRequest())
	_, err := svc.Login(context.Background(), "alice", "correcthorse")
	require.NoError(t, err)

	t.Run("requires confirmation", func(t *testing.T) {
		err := svc.DeleteUser(context.Background(), "alice", false)
		assert.ErrorIs(t, err, common.ErrMissingConfirmation)
	})

	t.Run("removes user and sessions", func(t *testing.T) {
		require.NoError(t, svc.DeleteUser(context.Background(), "alice", true))

		_, err := m.Users(nil).GetByUsername(context.Background(), "alice")
		assert.ErrorIs(t, err, common.ErrorNotFound)
		assert.Equal(t, 0, m.SessionCount("alice"))
	})

	t.Run("unknown user", func(t *testing.T) {
		err := svc.DeleteUser(context.Background(), "nobody", true)
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestUpdatePassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	registerUser(t, svc, validRegisterRequest())

	t.Run("wrong old password", func(t *testing.T) {
		err := svc.UpdatePassword(context.Background(), "alice", "wrongwrong", "newpassword1", "newpassword1")
		assert.ErrorIs(t, err, common.ErrorUnauthorized)
	})

	t.Run("mismatched new passwords", func(t *testing.T) {
		err := svc.UpdatePassword(context.Background(), "alice", "correcthorse", "newpassword1", "different1")
		var ve *common.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "password")
	})

	t.Run("short new password", func(t *testing.T) {
		err := svc.UpdatePassword(context.Background(), "alice", "correcthorse", "short", "short")
		var ve *common.ValidationError
		require.ErrorAs(t, err, &ve)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := svc.UpdatePassword(context.Background(), "nobody", "correcthorse", "newpassword1", "newpassword1")
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, svc.UpdatePassword(context.Background(), "alice", "correcthorse", "newpassword1", "newpassword1"))

		_, err := svc.Login(context.Background(), "alice", "correcthorse")
		assert.ErrorIs(t, err, common.ErrInvalidCredentials)
		_, err = svc.Login(context.Background(), "alice", "newpassword1")
		assert.NoError(t, err)
	})
}
