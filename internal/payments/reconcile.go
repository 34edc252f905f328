package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dinehub/dinehub/internal/auth"
	"github.com/dinehub/dinehub/internal/orders/domain"
)

// EventCheckoutCompleted is the provider event that settles an order.
const EventCheckoutCompleted = "checkout.session.completed"

// ErrBadPayload is returned when a webhook body cannot be interpreted.
var ErrBadPayload = errors.New("malformed webhook payload")

// WebhookEvent is the provider's event envelope.
type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string            `json:"id"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// OrderTransitioner advances an order's status on behalf of an actor.
type OrderTransitioner interface {
	TransitionOrder(ctx context.Context, orderID string, actor auth.Identity, next domain.OrderStatus) (*domain.Order, error)
}

// Reconciler settles orders from verified provider webhooks. The webhook
// is the only path that marks an order paid.
type Reconciler struct {
	orders OrderTransitioner
	logger *slog.Logger
}

func NewReconciler(orders OrderTransitioner, logger *slog.Logger) *Reconciler {
	return &Reconciler{orders: orders, logger: logger}
}

// Process handles a single verified webhook payload. Events other than
// checkout completion are acknowledged without effect. Re-delivery of a
// completion event for an already paid order is a no-op.
func (r *Reconciler) Process(ctx context.Context, payload []byte) error {
	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if event.Type == "" {
		return fmt.Errorf("%w: missing event type", ErrBadPayload)
	}

	if event.Type != EventCheckoutCompleted {
		r.logger.DebugContext(ctx, "ignoring webhook event",
			"event_id", event.ID,
			"event_type", event.Type,
		)
		return nil
	}

	orderID := event.Data.Object.Metadata["order_id"]
	if orderID == "" {
		return fmt.Errorf("%w: completion event without order_id metadata", ErrBadPayload)
	}

	if _, err := r.orders.TransitionOrder(ctx, orderID, auth.System, domain.StatusPaid); err != nil {
		return fmt.Errorf("settle order %s: %w", orderID, err)
	}

	r.logger.InfoContext(ctx, "order settled from webhook",
		"event_id", event.ID,
		"order_id", orderID,
	)
	return nil
}
