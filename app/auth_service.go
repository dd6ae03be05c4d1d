package app

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "apextelemetry/internal/errors"
	"apextelemetry/models"
	"apextelemetry/ports"
)

// AuthService handles registration, login and account management.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenRepository
}

// NewAuthService creates an auth service over the given repositories.
func NewAuthService(users ports.UserRepository, tokens ports.TokenRepository) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a new account and issues a login token.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, *models.AuthToken, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" {
		return nil, nil, apperrors.ValidationError("username and email are required")
	}
	if !strings.Contains(email, "@") {
		return nil, nil, apperrors.ValidationError("email address is not valid")
	}
	if err := ValidatePassword(password); err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, nil, err
	}

	token, err := s.tokens.CreateToken(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// Login verifies credentials and issues a login token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, *models.AuthToken, error) {
	user, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, nil, apperrors.Unauthorized("invalid username or password")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, apperrors.Unauthorized("invalid username or password")
	}

	token, err := s.tokens.CreateToken(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// Logout revokes a single login token.
func (s *AuthService) Logout(ctx context.Context, token uuid.UUID) error {
	return s.tokens.DeleteToken(ctx, token)
}

// ValidateToken resolves a token to its user, rejecting expired tokens.
func (s *AuthService) ValidateToken(ctx context.Context, token uuid.UUID) (*models.User, error) {
	t, err := s.tokens.GetToken(ctx, token)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid session")
	}
	if t.Expired(time.Now()) {
		_ = s.tokens.DeleteToken(ctx, token)
		return nil, apperrors.Unauthorized("session expired")
	}
	return s.users.GetUserByID(ctx, t.UserID)
}

// ChangePassword verifies the current password and replaces it. Other
// login sessions are revoked.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return apperrors.Unauthorized("current password is incorrect")
	}
	if err := ValidatePassword(next); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}
	return s.tokens.DeleteUserTokens(ctx, userID)
}

// DeleteAccount verifies the password and removes the user and everything
// they own.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uuid.UUID, password string) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return apperrors.Unauthorized("password is incorrect")
	}
	return s.users.DeleteUser(ctx, userID)
}

// ValidatePassword enforces the account password policy: at least eight
// characters with an uppercase letter, a lowercase letter and a digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.ValidationError("password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper {
		return apperrors.ValidationError("password must contain an uppercase letter")
	}
	if !hasLower {
		return apperrors.ValidationError("password must contain a lowercase letter")
	}
	if !hasDigit {
		return apperrors.ValidationError("password must contain a digit")
	}
	return nil
}
