package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tokobaju/internal/models"
	"tokobaju/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CreateClothingInput is the payload accepted by ClothingService.Create.
// Price is a pointer so that a missing price can be told apart from 0.
type CreateClothingInput struct {
	Name     string          `json:"name" validate:"required"`
	Material models.Material `json:"material" validate:"required,oneof=Cotton Denim Leather Linen"`
	Price    *float64        `json:"price" validate:"required"`
	Discount *float64        `json:"discount" validate:"omitempty,gte=0,lte=100"`
}

// ClothingService implements the catalog operations.
type ClothingService struct {
	repo      repositories.ClothingRepository
	publisher EventPublisher // optional
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewClothingService creates a new ClothingService. publisher may be nil, in which
// case no catalog events are emitted.
func NewClothingService(repo repositories.ClothingRepository, publisher EventPublisher, logger *zap.Logger) *ClothingService {
	return &ClothingService{
		repo:      repo,
		publisher: publisher,
		validate:  NewValidator(),
		logger:    logger,
	}
}

// Create validates in, applies defaults and stores a new item.
func (s *ClothingService) Create(ctx context.Context, in CreateClothingInput) (*models.ClothingItem, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, newValidationError(err)
	}

	item := &models.ClothingItem{
		Name:     in.Name,
		Material: in.Material,
		Price:    *in.Price,
	}
	if in.Discount != nil {
		item.Discount = *in.Discount
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add clothes: %w", err)
	}

	s.publish(ctx, EventClothesCreated, item.ID, item)
	return item, nil
}

// GetByID returns the item with the given id.
func (s *ClothingService) GetByID(ctx context.Context, id string) (*models.ClothingItem, error) {
	return s.repo.GetByID(ctx, id)
}

// Update merges patch into the stored item and returns the result. The merged
// item is validated as a whole before it is written.
func (s *ClothingService) Update(ctx context.Context, id string, patch models.ClothingPatch) (*models.ClothingItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return item, nil
	}

	patch.Apply(item)
	if err := s.validate.Struct(item); err != nil {
		return nil, newValidationError(err)
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.publish(ctx, EventClothesUpdated, item.ID, item)
	return item, nil
}

// Delete removes the item with the given id.
func (s *ClothingService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, EventClothesDeleted, id, nil)
	return nil
}

// DeleteAll empties the catalog.
func (s *ClothingService) DeleteAll(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return err
	}
	s.publish(ctx, EventClothesPurged, "", nil)
	return nil
}

// FinalPrice returns the discounted price of the item with the given id.
func (s *ClothingService) FinalPrice(ctx context.Context, id string) (float64, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return item.FinalPrice(), nil
}

// publish emits a catalog event. Failures are logged and otherwise ignored.
func (s *ClothingService) publish(ctx context.Context, eventType, itemID string, item *models.ClothingItem) {
	if s.publisher == nil {
		return
	}

	body, err := json.Marshal(CatalogEvent{
		Type:       eventType,
		ItemID:     itemID,
		Item:       item,
		Actor:      ActorFrom(ctx),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("failed to marshal catalog event", zap.String("type", eventType), zap.Error(err))
		return
	}

	if err := s.publisher.Publish(CatalogExchange, eventType, body); err != nil {
		s.logger.Warn("failed to publish catalog event",
			zap.String("type", eventType),
			zap.String("item_id", itemID),
			zap.Error(err))
	}
}
