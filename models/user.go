package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// AuthToken is a server-side login session. The token value doubles as the
// cookie payload; expiry is enforced on lookup.
type AuthToken struct {
	Token     uuid.UUID `json:"token" db:"token"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *AuthToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
