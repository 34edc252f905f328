package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dinehub/dinehub/internal/auth"
	"github.com/dinehub/dinehub/internal/catalog"
	"github.com/dinehub/dinehub/internal/orders/domain"
	"github.com/dinehub/dinehub/internal/orders/ports"
)

type TransitionOrderCommand struct {
	OrderID string
	Actor   auth.Identity
	Next    domain.OrderStatus
}

type TransitionOrderHandler interface {
	Handle(ctx context.Context, cmd TransitionOrderCommand) (*domain.Order, error)
}

// TransitionOrderCommandHandler advances the order state machine. The actual
// move is a single conditional update keyed on the set of legal predecessor
// statuses, so two concurrent attempts cannot both apply.
type TransitionOrderCommandHandler struct {
	repo    ports.OrderRepository
	catalog catalog.Store
	events  ports.EventBus
	logger  *slog.Logger
}

func NewTransitionOrderCommandHandler(
	repo ports.OrderRepository,
	cat catalog.Store,
	events ports.EventBus,
	logger *slog.Logger,
) *TransitionOrderCommandHandler {
	return &TransitionOrderCommandHandler{
		repo:    repo,
		catalog: cat,
		events:  events,
		logger:  logger,
	}
}

func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*domain.Order, error) {
	if !cmd.Next.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	order, err := h.repo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}

	if err := h.authorize(ctx, cmd, order); err != nil {
		return nil, err
	}

	from := order.Status
	updated, err := h.repo.TransitionStatus(ctx, cmd.OrderID, cmd.Next, domain.AllowedPredecessors(cmd.Next))
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		if errors.Is(err, ports.ErrStatusConflict) {
			return h.resolveConflict(ctx, cmd)
		}
		return nil, fmt.Errorf("transition order: %w", err)
	}

	h.publish(ctx, updated.ID, from, cmd.Next)
	return updated, nil
}

// authorize enforces who may drive which transition: the paid transition is
// reserved for the payment reconciliation path, everything else for the
// owning restaurant's owner.
func (h *TransitionOrderCommandHandler) authorize(ctx context.Context, cmd TransitionOrderCommand, order *domain.Order) error {
	if cmd.Next == domain.StatusPaid {
		if cmd.Actor.Role != auth.RoleSystem {
			return domain.ErrForbidden
		}
		return nil
	}
	if cmd.Actor.Role == auth.RoleSystem {
		return domain.ErrForbidden
	}

	restaurant, err := h.catalog.FindRestaurant(ctx, order.RestaurantID)
	if err != nil {
		return fmt.Errorf("load restaurant for authorization: %w", err)
	}
	if !auth.CanTransitionOrder(cmd.Actor, restaurant.OwnerID) {
		return domain.ErrForbidden
	}
	return nil
}

// resolveConflict decides what a lost conditional update means. A repeated
// paid transition (duplicate webhook delivery) is a no-op; everything else is
// an unreachable transition.
func (h *TransitionOrderCommandHandler) resolveConflict(ctx context.Context, cmd TransitionOrderCommand) (*domain.Order, error) {
	current, err := h.repo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("re-read order after conflict: %w", err)
	}

	if cmd.Next == domain.StatusPaid && current.Status == domain.StatusPaid {
		h.logger.InfoContext(ctx, "duplicate paid transition ignored", "order_id", cmd.OrderID)
		return current, nil
	}
	return nil, domain.ErrInvalidTransition
}

func (h *TransitionOrderCommandHandler) publish(ctx context.Context, orderID string, from, to domain.OrderStatus) {
	var err error
	if to == domain.StatusPaid {
		err = h.events.PublishOrderPaid(ctx, orderID)
	} else {
		err = h.events.PublishOrderStatusChanged(ctx, orderID, from, to)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "failed to publish status change", "error", err, "order_id", orderID, "to", to)
	}
}
