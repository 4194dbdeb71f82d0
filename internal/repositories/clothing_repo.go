package repositories

import (
	"context"

	"tokobaju/internal/models"
)

// ClothingRepository defines the interface for catalog data access.
// Implementations assign item.ID on Create when it is empty.
type ClothingRepository interface {
	Create(ctx context.Context, item *models.ClothingItem) error
	GetByID(ctx context.Context, id string) (*models.ClothingItem, error)
	Update(ctx context.Context, item *models.ClothingItem) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
