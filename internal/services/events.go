package services

import (
	"context"
	"time"

	"tokobaju/internal/models"
)

// CatalogExchange is the topic exchange catalog events are published to.
const CatalogExchange = "catalog"

// Routing keys of catalog events.
const (
	EventClothesCreated = "clothes.created"
	EventClothesUpdated = "clothes.updated"
	EventClothesDeleted = "clothes.deleted"
	EventClothesPurged  = "clothes.purged"
)

// EventPublisher sends a message body to an exchange with a routing key.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// CatalogEvent is the JSON body of every catalog event.
type CatalogEvent struct {
	Type       string               `json:"type"`
	ItemID     string               `json:"item_id,omitempty"`
	Item       *models.ClothingItem `json:"item,omitempty"`
	Actor      string               `json:"actor,omitempty"`
	OccurredAt time.Time            `json:"occurred_at"`
}

type actorKey struct{}

// WithActor returns a copy of ctx carrying the authenticated username.
func WithActor(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, actorKey{}, username)
}

// ActorFrom returns the username stored by WithActor, or "".
func ActorFrom(ctx context.Context) string {
	username, _ := ctx.Value(actorKey{}).(string)
	return username
}
