package ports

import (
	"context"

	"github.com/dinehub/dinehub/internal/orders/domain"
)

// EventBus publishes order lifecycle events. Publishing is best-effort: a
// failed publish is logged but never rolls back the durable state change that
// triggered it.
type EventBus interface {
	PublishOrderCreated(ctx context.Context, order domain.Order) error
	PublishOrderPaid(ctx context.Context, orderID string) error
	PublishOrderStatusChanged(ctx context.Context, orderID string, from, to domain.OrderStatus) error
}
