package model

import (
	"context"
	"time"
)

// Role is the authorization level attached to a user.
type Role string

const (
	// RoleUser is the default role granted at registration.
	RoleUser Role = "user"
	// RoleAdmin grants access to admin-only routes.
	RoleAdmin Role = "admin"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetRole(ctx context.Context, id int64) (Role, error)
	List(ctx context.Context) ([]User, error)
	Register(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, id int64, params UpdateUserParams) (User, error)
	SoftDelete(ctx context.Context, id int64) error
}

// User represents a stored account with authentication material.
// PasswordHash never leaves the server.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Nickname     string
	Role         Role
	IsOpen       bool
	Image        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// RegisterParams contains parameters to register a new account.
type RegisterParams struct {
	Email    string
	Password string
	Nickname string
	Image    string
}

// UpdateProfileParams contains a caller-facing partial profile update
// with the plaintext password still unhashed.
type UpdateProfileParams struct {
	Password *string
	Nickname *string
	IsOpen   *bool
	Image    *string
}

// UpdateUserParams contains a partial user update. Nil fields keep the
// value currently stored on the row; a non-nil pointer always writes,
// so IsOpen=false is distinguishable from IsOpen omitted.
type UpdateUserParams struct {
	PasswordHash *string
	Nickname     *string
	IsOpen       *bool
	Image        *string
}
