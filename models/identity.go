package models

// Role is the closed set of caller roles. Authorization checks match
// exhaustively on this type so an unknown role can never pass a gate.
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleAdmin   Role = "admin"
)

// ParseRole maps a raw role string onto the closed enum.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCitizen:
		return RoleCitizen, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// Identity is the resolved caller context produced by the authenticator.
// The core treats it as read-only and never accepts identity fields from a
// request body.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
