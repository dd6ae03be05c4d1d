package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	apperrors "apextelemetry/internal/errors"
	"apextelemetry/models"
	"apextelemetry/ports"
)

// tokenTTL is how long a login session stays valid.
const tokenTTL = 30 * 24 * time.Hour

// UserRepositoryImpl implements UserRepository for PostgreSQL.
type UserRepositoryImpl struct {
	db *sqlx.DB
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(db *sqlx.DB) ports.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// CreateUser inserts a new user. Username and email must be unique.
func (r *UserRepositoryImpl) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES (:id, :username, :email, :password_hash, :created_at)
	`, user)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return apperrors.Conflict("username or email already exists")
		}
		return err
	}

	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepositoryImpl) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`, userID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user")
		}
		return nil, err
	}

	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (r *UserRepositoryImpl) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE username = $1
	`, username)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user")
		}
		return nil, err
	}

	return &user, nil
}

// UpdatePassword replaces the user's password hash.
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET password_hash = $2 WHERE id = $1
	`, userID, passwordHash)
	return err
}

// DeleteUser removes the user; sessions, lap records, comparisons and
// tokens go with it via ON DELETE CASCADE.
func (r *UserRepositoryImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	return err
}

// TokenRepositoryImpl implements TokenRepository for PostgreSQL.
type TokenRepositoryImpl struct {
	db *sqlx.DB
}

// NewTokenRepository creates a new PostgreSQL token repository.
func NewTokenRepository(db *sqlx.DB) ports.TokenRepository {
	return &TokenRepositoryImpl{db: db}
}

// CreateToken issues a new auth token for the user.
func (r *TokenRepositoryImpl) CreateToken(ctx context.Context, userID uuid.UUID) (*models.AuthToken, error) {
	now := time.Now()
	token := &models.AuthToken{
		Token:     uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(tokenTTL),
	}

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO auth_tokens (token, user_id, created_at, expires_at)
		VALUES (:token, :user_id, :created_at, :expires_at)
	`, token)
	if err != nil {
		return nil, err
	}

	return token, nil
}

// GetToken retrieves a token by its value.
func (r *TokenRepositoryImpl) GetToken(ctx context.Context, token uuid.UUID) (*models.AuthToken, error) {
	var t models.AuthToken
	err := r.db.GetContext(ctx, &t, `
		SELECT token, user_id, created_at, expires_at
		FROM auth_tokens
		WHERE token = $1
	`, token)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("token")
		}
		return nil, err
	}

	return &t, nil
}

// DeleteToken revokes a single token.
func (r *TokenRepositoryImpl) DeleteToken(ctx context.Context, token uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE token = $1`, token)
	return err
}

// DeleteUserTokens revokes every token belonging to the user.
func (r *TokenRepositoryImpl) DeleteUserTokens(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE user_id = $1`, userID)
	return err
}
