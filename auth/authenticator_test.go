package auth

import (
	"testing"
	"time"

	"civicreport-be/apperrors"
	"civicreport-be/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{
		ID:    "user-1",
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  models.RoleCitizen,
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	authenticator := NewJWTAuthenticator("test-secret")

	token, err := authenticator.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := authenticator.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, models.Identity{
		ID:    "user-1",
		Email: "alice@example.com",
		Name:  "Alice",
		Role:  models.RoleCitizen,
	}, identity)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTAuthenticator("secret-one").Issue(testUser())
	require.NoError(t, err)

	_, err = NewJWTAuthenticator("secret-two").Verify(token)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	secret := "test-secret"
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-1",
		"email":   "alice@example.com",
		"name":    "Alice",
		"role":    "citizen",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	tokenString, err := expired.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewJWTAuthenticator(secret).Verify(tokenString)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	authenticator := NewJWTAuthenticator("test-secret")
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := authenticator.Verify(token)
		require.Error(t, err, token)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
	}
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	secret := "test-secret"
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-1",
		"email":   "alice@example.com",
		"name":    "Alice",
		"role":    "superuser",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	// The role enum is closed; an unrecognized role must not slip through
	// as either citizen or admin.
	_, err = NewJWTAuthenticator(secret).Verify(tokenString)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}

func TestMisconfiguredSecretIsUpstreamError(t *testing.T) {
	authenticator := NewJWTAuthenticator("")

	_, err := authenticator.Issue(testUser())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUpstreamAuth))

	_, err = authenticator.Verify("anything")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUpstreamAuth))
}
