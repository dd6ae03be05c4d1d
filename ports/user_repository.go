package ports

import (
	"context"

	"github.com/google/uuid"

	"apextelemetry/models"
)

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	// CreateUser inserts a new user. Username and email must be unique.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdatePassword replaces the user's password hash.
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error

	// DeleteUser removes the user and, via cascading constraints, all of
	// their sessions, lap records, comparisons and tokens.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// TokenRepository defines the interface for login-session persistence.
type TokenRepository interface {
	// CreateToken issues a new auth token for the user.
	CreateToken(ctx context.Context, userID uuid.UUID) (*models.AuthToken, error)

	// GetToken retrieves a token by its value.
	GetToken(ctx context.Context, token uuid.UUID) (*models.AuthToken, error)

	// DeleteToken revokes a single token.
	DeleteToken(ctx context.Context, token uuid.UUID) error

	// DeleteUserTokens revokes every token belonging to the user.
	DeleteUserTokens(ctx context.Context, userID uuid.UUID) error
}
