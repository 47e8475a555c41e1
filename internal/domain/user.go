package domain

import (
	"context"
	"time"
)

var (
	ErrInvalidCredentials = &Error{Code: EUNAUTHORIZED, Message: "Unauthorized"}
	ErrEmailTaken         = &Error{Code: ECONFLICT, Message: "The email has already been taken"}
	ErrTokenNotFound      = &Error{Code: EUNAUTHORIZED, Message: "Invalid or expired token"}
)

// User represents a registered account.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// AuthToken is an issued bearer token. Only the SHA-256 digest of the token
// is persisted; the plaintext is shown to the client once at issuance.
type AuthToken struct {
	ID        int64
	UserID    int64
	ExpiresAt time.Time
}

// RegisterParams are the inputs for creating an account.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// UserService provides account registration and bearer token issuance.
type UserService interface {
	// Register creates a user and issues a bearer token.
	Register(ctx context.Context, params RegisterParams) (*User, string, error)

	// Login verifies credentials and issues a bearer token.
	Login(ctx context.Context, email, password string) (*User, string, error)

	// Logout revokes the presented bearer token.
	Logout(ctx context.Context, token string) error

	// Authenticate resolves a bearer token to its user.
	// Returns ErrTokenNotFound for unknown or expired tokens.
	Authenticate(ctx context.Context, token string) (*User, error)
}
