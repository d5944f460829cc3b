package domain

import (
	"context"
	"strings"
	"time"
)

// User represents an employee account
type User struct {
	ID           string     `bson:"_id,omitempty" json:"id"`
	Email        string     `bson:"email" json:"email"`
	Name         string     `bson:"name" json:"name"`
	PasswordHash string     `bson:"password_hash" json:"-"`
	Role         string     `bson:"role" json:"role"` // admin | manager | employee
	Designation  string     `bson:"designation" json:"designation"`
	Phone        string     `bson:"phone" json:"phone"`
	Active       bool       `bson:"active" json:"active"`
	JoinedAt     *time.Time `bson:"joined_at,omitempty" json:"joined_at,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updated_at"`
}

// Role constants. Admin subsumes every other role; manager subsumes employee
// for the routes that accept either.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// NormalizeEmail lowercases and trims an address so the unique index on
// email treats Jane@x.com and jane@x.com as the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidRole reports whether role is one of the known role tags.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleEmployee
}

// UserRepository defines operations for managing user accounts
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error

	// Query operations
	GetAll(ctx context.Context) ([]*User, error)
	GetByRole(ctx context.Context, role string) ([]*User, error)
	Count(ctx context.Context) (int64, error)
}
