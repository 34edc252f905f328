package kafka

import (
	"context"
	"log/slog"

	"github.com/dinehub/dinehub/internal/orders/domain"
)

// NoopEventBus logs events without sending them to Kafka. Useful for local
// dev before wiring Kafka.
type NoopEventBus struct{}

// NewNoopEventBus returns a new no-op event publisher.
func NewNoopEventBus() *NoopEventBus {
	return &NoopEventBus{}
}

func (n *NoopEventBus) PublishOrderCreated(_ context.Context, order domain.Order) error {
	slog.Debug("event::order_created", "order_id", order.ID)
	return nil
}

func (n *NoopEventBus) PublishOrderPaid(_ context.Context, orderID string) error {
	slog.Debug("event::order_paid", "order_id", orderID)
	return nil
}

func (n *NoopEventBus) PublishOrderStatusChanged(_ context.Context, orderID string, from, to domain.OrderStatus) error {
	slog.Debug("event::order_status_changed", "order_id", orderID, "from", from, "to", to)
	return nil
}
