package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the JWT payload carried by every issued access token.
// Immutable once issued; a role change requires a fresh token.
type AccessClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Principal is the authenticated identity bound to one request or one
// realtime connection. Derived 1:1 from verified AccessClaims.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
