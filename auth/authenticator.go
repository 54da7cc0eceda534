// Package auth resolves bearer credentials into caller identities. The rest
// of the application only depends on the Authenticator interface; the JWT
// implementation is the concrete collaborator wired in main.
package auth

import (
	"fmt"
	"time"

	"civicreport-be/apperrors"
	"civicreport-be/models"

	"github.com/dgrijalva/jwt-go"
)

// TokenTTL is how long issued tokens stay valid.
const TokenTTL = 72 * time.Hour

// Authenticator validates a bearer credential and yields the caller's
// identity. Implementations must never trust identity data from anywhere
// other than the credential itself.
type Authenticator interface {
	Verify(token string) (models.Identity, error)
}

// JWTAuthenticator verifies and issues HS256 tokens carrying the identity
// in its claims.
type JWTAuthenticator struct {
	secret []byte
}

func NewJWTAuthenticator(secret string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret)}
}

// Issue signs a token for the given account.
func (a *JWTAuthenticator) Issue(user *models.User) (string, error) {
	if len(a.secret) == 0 {
		return "", apperrors.NewUpstreamAuthError("JWT secret not configured", nil)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"role":    string(user.Role),
		"exp":     time.Now().Add(TokenTTL).Unix(),
	})
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", apperrors.NewUpstreamAuthError("Failed to sign token", err)
	}
	return signed, nil
}

// Verify parses the token and reconstructs the identity from its claims.
// Any invalid, expired or malformed credential fails as unauthorized; a
// misconfigured verifier fails as an upstream authenticator error.
func (a *JWTAuthenticator) Verify(tokenString string) (models.Identity, error) {
	if len(a.secret) == 0 {
		return models.Identity{}, apperrors.NewUpstreamAuthError("JWT secret not configured", nil)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return models.Identity{}, apperrors.NewUnauthorizedError("Invalid authorization token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Identity{}, apperrors.NewUnauthorizedError("Invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return models.Identity{}, apperrors.NewUnauthorizedError("Invalid token claims")
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	roleStr, _ := claims["role"].(string)
	role, ok := models.ParseRole(roleStr)
	if !ok {
		return models.Identity{}, apperrors.NewUnauthorizedError("Invalid token claims")
	}

	return models.Identity{ID: userID, Email: email, Name: name, Role: role}, nil
}
