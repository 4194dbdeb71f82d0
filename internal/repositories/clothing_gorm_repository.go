package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tokobaju/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMClothingRepository is a GORM implementation of ClothingRepository.
type GORMClothingRepository struct {
	db *gorm.DB
}

// NewGORMClothingRepository creates a new instance of GORMClothingRepository.
func NewGORMClothingRepository(db *gorm.DB) *GORMClothingRepository {
	return &GORMClothingRepository{
		db: db,
	}
}

func parseClothingID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("clothing id %q: %w", id, ErrInvalidID)
	}
	return nil
}

// Create inserts a new clothing item, generating its ID when missing.
func (r *GORMClothingRepository) Create(ctx context.Context, item *models.ClothingItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create clothing item: %w", err)
	}
	return nil
}

// GetByID retrieves a single clothing item by its ID.
func (r *GORMClothingRepository) GetByID(ctx context.Context, id string) (*models.ClothingItem, error) {
	if err := parseClothingID(id); err != nil {
		return nil, err
	}
	var item models.ClothingItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("clothing item with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get clothing item by ID %s: %w", id, err)
	}
	return &item, nil
}

// Update overwrites the mutable fields of an existing clothing item.
// Zero values are written too, so a discount can be reset to 0.
func (r *GORMClothingRepository) Update(ctx context.Context, item *models.ClothingItem) error {
	if err := parseClothingID(item.ID); err != nil {
		return err
	}
	item.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).
		Model(&models.ClothingItem{}).
		Where("id = ?", item.ID).
		Select("name", "material", "price", "discount", "updated_at").
		Updates(item)
	if res.Error != nil {
		return fmt.Errorf("failed to update clothing item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("clothing item with ID %s: %w", item.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a clothing item by its ID.
func (r *GORMClothingRepository) Delete(ctx context.Context, id string) error {
	if err := parseClothingID(id); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Delete(&models.ClothingItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete clothing item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("clothing item with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteAll removes every clothing item.
func (r *GORMClothingRepository) DeleteAll(ctx context.Context) error {
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.ClothingItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete all clothing items: %w", err)
	}
	return nil
}
