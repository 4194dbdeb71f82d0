package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tokobaju/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ClothingCollection is the collection the catalog is stored in.
const ClothingCollection = "cloths"

type clothingDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Material  string             `bson:"material"`
	Price     float64            `bson:"price"`
	Discount  float64            `bson:"discount"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d clothingDocument) toModel() *models.ClothingItem {
	return &models.ClothingItem{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Material:  models.Material(d.Material),
		Price:     d.Price,
		Discount:  d.Discount,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// MongoClothingRepository is a MongoDB implementation of ClothingRepository.
// Identifiers are ObjectID hex strings.
type MongoClothingRepository struct {
	coll *mongo.Collection
}

// NewMongoClothingRepository creates a repository backed by the cloths collection of db.
func NewMongoClothingRepository(db *mongo.Database) *MongoClothingRepository {
	return &MongoClothingRepository{coll: db.Collection(ClothingCollection)}
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("clothing id %q: %w", id, ErrInvalidID)
	}
	return oid, nil
}

// Create inserts a new clothing item and sets its ID.
func (r *MongoClothingRepository) Create(ctx context.Context, item *models.ClothingItem) error {
	oid := primitive.NewObjectID()
	if item.ID != "" {
		var err error
		if oid, err = parseObjectID(item.ID); err != nil {
			return err
		}
	}
	now := time.Now().UTC()
	doc := clothingDocument{
		ID:        oid,
		Name:      item.Name,
		Material:  string(item.Material),
		Price:     item.Price,
		Discount:  item.Discount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create clothing item: %w", err)
	}
	item.ID = oid.Hex()
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

// GetByID retrieves a clothing item by its ObjectID hex string.
func (r *MongoClothingRepository) GetByID(ctx context.Context, id string) (*models.ClothingItem, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc clothingDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("clothing item with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get clothing item by ID %s: %w", id, err)
	}
	return doc.toModel(), nil
}

// Update sets the mutable fields of an existing clothing item.
func (r *MongoClothingRepository) Update(ctx context.Context, item *models.ClothingItem) error {
	oid, err := parseObjectID(item.ID)
	if err != nil {
		return err
	}
	item.UpdatedAt = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":      item.Name,
		"material":  string(item.Material),
		"price":     item.Price,
		"discount":  item.Discount,
		"updatedAt": item.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("failed to update clothing item: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("clothing item with ID %s: %w", item.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a clothing item by its ID.
func (r *MongoClothingRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete clothing item: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("clothing item with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteAll removes every document of the collection.
func (r *MongoClothingRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("failed to delete all clothing items: %w", err)
	}
	return nil
}
