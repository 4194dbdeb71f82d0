package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tokobaju/internal/models"

	"github.com/google/uuid"
)

// InMemoryUserRepository is an in-memory implementation of UserRepository.
type InMemoryUserRepository struct {
	users      map[string]models.User
	byUsername map[string]string
	mu         sync.RWMutex
}

// NewInMemoryUserRepository creates a new instance of InMemoryUserRepository.
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:      make(map[string]models.User),
		byUsername: make(map[string]string),
	}
}

// Create adds a new user. Usernames are unique.
func (r *InMemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[user.Username]; taken {
		return fmt.Errorf("username %s: %w", user.Username, ErrDuplicate)
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	r.byUsername[user.Username] = user.ID
	return nil
}

// GetByUsername returns a user by username.
func (r *InMemoryUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, fmt.Errorf("user with username %s: %w", username, ErrNotFound)
	}
	user := r.users[id]
	return &user, nil
}
