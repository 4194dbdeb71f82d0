package handlers

import (
	"encoding/json"
	"fmt"

	"tokobaju/internal/services"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// NewCatalogAuditHandler returns a consumer callback that writes every catalog
// event to logger. Undecodable messages are rejected.
func NewCatalogAuditHandler(logger *zap.Logger) func(msg amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var event services.CatalogEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return fmt.Errorf("failed to decode catalog event: %w", err)
		}
		logger.Info("catalog event",
			zap.String("type", event.Type),
			zap.String("item_id", event.ItemID),
			zap.String("actor", event.Actor),
			zap.Time("occurred_at", event.OccurredAt))
		return nil
	}
}
