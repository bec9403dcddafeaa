package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/williamanish-889/educlip-backend/internal/models"
	"github.com/williamanish-889/educlip-backend/internal/repository"
)

func newAuthService() AuthService {
	tokens := NewTokenService("test-secret", time.Hour)
	return NewAuthService(repository.NewMemoryUserRepository(), tokens, zap.NewNop())
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := newAuthService()

	reg, err := svc.Register("alicealice", "alice@example.com", "secret1", models.RoleStudent)
	require.NoError(t, err)
	assert.NotEmpty(t, reg.User.ID)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, models.RoleStudent, reg.User.Role)
	assert.Nil(t, reg.User.LastLoginAt)

	login, err := svc.Login("alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
	assert.NotEmpty(t, login.Token)
	assert.NotNil(t, login.User.LastLoginAt)
}

func TestAuthService_LoginTokenResolvesToSameUser(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)
	svc := NewAuthService(repository.NewMemoryUserRepository(), tokens, zap.NewNop())

	reg, err := svc.Register("alicealice", "alice@example.com", "secret1", models.RoleStudent)
	require.NoError(t, err)

	login, err := svc.Login("alice@example.com", "secret1")
	require.NoError(t, err)

	claims, err := tokens.Verify(login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)
}

func TestAuthService_RegisterDefaultsToStudent(t *testing.T) {
	svc := newAuthService()

	reg, err := svc.Register("bobbybob", "bob@example.com", "hunter22", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, reg.User.Role)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := newAuthService()

	tests := []struct {
		name     string
		username string
		email    string
		password string
		role     models.UserRole
	}{
		{"short username", "ab", "a@example.com", "secret1", models.RoleStudent},
		{"short password", "alicealice", "a@example.com", "12345", models.RoleStudent},
		{"bad email", "alicealice", "not-an-email", "secret1", models.RoleStudent},
		{"unknown role", "alicealice", "a@example.com", "secret1", "wizard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(tt.username, tt.email, tt.password, tt.role)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc := newAuthService()

	_, err := svc.Register("alicealice", "alice@example.com", "secret1", models.RoleStudent)
	require.NoError(t, err)

	_, err = svc.Register("alicealice", "other@example.com", "secret1", models.RoleStudent)
	assert.ErrorIs(t, err, ErrUserAlreadyExists, "duplicate username")

	_, err = svc.Register("otherother", "alice@example.com", "secret1", models.RoleStudent)
	assert.ErrorIs(t, err, ErrUserAlreadyExists, "duplicate email")
}

func TestAuthService_LoginInvalidCredentials(t *testing.T) {
	svc := newAuthService()

	_, err := svc.Register("alicealice", "alice@example.com", "secret1", models.RoleStudent)
	require.NoError(t, err)

	_, err = svc.Login("alice@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
