package services

import (
	"context"
	"errors"
	"fmt"

	"tokobaju/internal/models"
	"tokobaju/internal/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the longest secret bcrypt accepts.
const maxPasswordBytes = 72

// AuthService handles signup, login and token validation.
type AuthService struct {
	userRepo   repositories.UserRepository
	tokens     *TokenService
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService. A bcryptCost of 0 selects bcrypt.DefaultCost.
func NewAuthService(userRepo repositories.UserRepository, tokens *TokenService, bcryptCost int, logger *zap.Logger) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Signup registers a new user with a bcrypt-hashed password.
// Passwords longer than 72 bytes are rejected with a *ValidationError.
func (s *AuthService) Signup(ctx context.Context, username, password string) (*models.User, error) {
	if len(password) > maxPasswordBytes {
		return nil, &ValidationError{Fields: map[string]string{
			"password": fmt.Sprintf("Field 'password' must be at most %d bytes", maxPasswordBytes),
		}}
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	switch {
	case err == nil && existing != nil:
		return nil, fmt.Errorf("username '%s': %w", username, ErrUsernameTaken)
	case err != nil && !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("username '%s': %w", username, ErrUsernameTaken)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login checks the credentials and returns a bearer token. Unknown users and wrong
// passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ValidateToken returns the username carried by a valid token.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	return s.tokens.Verify(tokenString)
}
