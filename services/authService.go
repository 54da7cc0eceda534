package services

import (
	"context"
	"time"

	"civicreport-be/apperrors"
	"civicreport-be/auth"
	"civicreport-be/models"
	"civicreport-be/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuthService implements the token-issuing collaborator: account creation,
// login and token issuance. The issue service never talks to this type; it
// only ever sees identities produced by the authenticator.
type AuthService struct {
	users  *repository.UserRepository
	tokens *auth.JWTAuthenticator
	log    zerolog.Logger
}

func NewAuthService(users *repository.UserRepository, tokens *auth.JWTAuthenticator, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

// RegisterInput carries a signup request. Role defaults to citizen; admin is
// only granted when explicitly requested, mirroring the portal's demo setup
// where admin accounts are provisioned through the same endpoint.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Register creates a new account with a hashed password.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	role := models.RoleCitizen
	if in.Role == string(models.RoleAdmin) {
		role = models.RoleAdmin
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Password:  in.Password,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := user.HashPassword(); err != nil {
		return nil, apperrors.NewUpstreamAuthError("Failed to hash password", err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return user, nil
}

// Login checks the credentials and issues a bearer token. Bad email and bad
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, "", apperrors.NewUnauthorizedError("Invalid credentials")
		}
		return nil, "", err
	}
	if !user.ComparePassword(password) {
		return nil, "", apperrors.NewUnauthorizedError("Invalid credentials")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
