package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is a stored account used by the token-issuing authenticator. The
// issue service itself never reads this type; it only ever sees an Identity.
// Password holds the bcrypt hash; it round-trips through the store but the
// HTTP layer only ever serializes AsIdentity, never User itself.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}

// AsIdentity projects the stored account onto the caller context shape.
func (u *User) AsIdentity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}
