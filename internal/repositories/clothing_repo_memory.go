package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tokobaju/internal/models"

	"github.com/google/uuid"
)

// InMemoryClothingRepository is an in-memory implementation of ClothingRepository.
type InMemoryClothingRepository struct {
	items map[string]models.ClothingItem
	mu    sync.RWMutex
}

// NewInMemoryClothingRepository creates a new instance of InMemoryClothingRepository.
func NewInMemoryClothingRepository() *InMemoryClothingRepository {
	return &InMemoryClothingRepository{
		items: make(map[string]models.ClothingItem),
	}
}

// Create adds a new clothing item.
func (r *InMemoryClothingRepository) Create(_ context.Context, item *models.ClothingItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	r.items[item.ID] = *item
	return nil
}

// GetByID returns a clothing item by its ID.
func (r *InMemoryClothingRepository) GetByID(_ context.Context, id string) (*models.ClothingItem, error) {
	if err := parseClothingID(id); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("clothing item with ID %s: %w", id, ErrNotFound)
	}
	return &item, nil
}

// Update replaces an existing clothing item, keeping its creation time.
func (r *InMemoryClothingRepository) Update(_ context.Context, item *models.ClothingItem) error {
	if err := parseClothingID(item.ID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.ID]
	if !ok {
		return fmt.Errorf("clothing item with ID %s: %w", item.ID, ErrNotFound)
	}
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = time.Now()
	r.items[item.ID] = *item
	return nil
}

// Delete removes a clothing item by its ID.
func (r *InMemoryClothingRepository) Delete(_ context.Context, id string) error {
	if err := parseClothingID(id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("clothing item with ID %s: %w", id, ErrNotFound)
	}
	delete(r.items, id)
	return nil
}

// DeleteAll empties the repository.
func (r *InMemoryClothingRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make(map[string]models.ClothingItem)
	return nil
}
