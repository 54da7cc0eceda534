package repository

import (
	"context"
	"encoding/json"

	"civicreport-be/apperrors"
	"civicreport-be/kvstore"
	"civicreport-be/models"
)

const userKeyPrefix = "user:"

// UserRepository stores accounts for the token-issuing authenticator under
// user:<email>. Email is the login key, so it doubles as the record key.
type UserRepository struct {
	store kvstore.Store
}

func NewUserRepository(store kvstore.Store) *UserRepository {
	return &UserRepository{store: store}
}

func userKey(email string) string {
	return userKeyPrefix + email
}

// Create persists a new account. It fails with a validation error when an
// account with the same email already exists.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	_, exists, err := r.store.Get(ctx, userKey(user.Email))
	if err != nil {
		return apperrors.NewStoreError("Failed to check existing user", err)
	}
	if exists {
		return apperrors.NewValidationError("User with this email already exists")
	}

	data, err := json.Marshal(user)
	if err != nil {
		return apperrors.NewStoreError("Failed to encode user", err)
	}
	if err := r.store.Set(ctx, userKey(user.Email), data); err != nil {
		return apperrors.NewStoreError("Failed to create user", err)
	}
	return nil
}

// GetByEmail looks an account up by its login email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	data, ok, err := r.store.Get(ctx, userKey(email))
	if err != nil {
		return nil, apperrors.NewStoreError("Failed to retrieve user", err)
	}
	if !ok {
		return nil, apperrors.NewNotFoundError("User not found")
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, apperrors.NewStoreError("Failed to decode user", err)
	}
	return &user, nil
}
