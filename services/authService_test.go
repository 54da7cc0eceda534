package services

import (
	"context"
	"testing"

	"civicreport-be/apperrors"
	"civicreport-be/auth"
	"civicreport-be/kvstore"
	"civicreport-be/models"
	"civicreport-be/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService() (*AuthService, *auth.JWTAuthenticator) {
	users := repository.NewUserRepository(kvstore.NewMemoryStore())
	tokens := auth.NewJWTAuthenticator("test-secret")
	return NewAuthService(users, tokens, zerolog.Nop()), tokens
}

func TestRegisterDefaultsToCitizen(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService()

	user, err := svc.Register(ctx, RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCitizen, user.Role)
	assert.NotEmpty(t, user.ID)
	// Stored hash, not the plaintext.
	assert.NotEqual(t, "hunter22", user.Password)
	assert.True(t, user.ComparePassword("hunter22"))

	adminUser, err := svc.Register(ctx, RegisterInput{
		Name:     "Carol",
		Email:    "carol@example.com",
		Password: "hunter22",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, adminUser.Role)

	// Unknown role strings collapse to citizen rather than minting a new role.
	weird, err := svc.Register(ctx, RegisterInput{
		Name:     "Mallory",
		Email:    "mallory@example.com",
		Password: "hunter22",
		Role:     "superuser",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCitizen, weird.Role)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService()

	input := RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "hunter22"}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	ctx := context.Background()
	svc, tokens := newTestAuthService()

	registered, err := svc.Register(ctx, RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	identity, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, registered.AsIdentity(), identity)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService()

	_, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "hunter22"})
	require.NoError(t, err)

	// Wrong password and unknown email are indistinguishable.
	_, _, err = svc.Login(ctx, "alice@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))

	_, _, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}
