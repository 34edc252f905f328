package queries

import (
	"context"
	"fmt"

	"github.com/dinehub/dinehub/internal/auth"
	"github.com/dinehub/dinehub/internal/catalog"
	"github.com/dinehub/dinehub/internal/orders/domain"
	"github.com/dinehub/dinehub/internal/orders/ports"
)

// ListOrdersQueryHandler serves the buyer-scoped and restaurant-scoped order
// listings, both newest first.
type ListOrdersQueryHandler struct {
	repo    ports.OrderRepository
	catalog catalog.Store
}

func NewListOrdersQueryHandler(repo ports.OrderRepository, cat catalog.Store) *ListOrdersQueryHandler {
	return &ListOrdersQueryHandler{repo: repo, catalog: cat}
}

// ListForBuyer returns the actor's own orders.
func (h *ListOrdersQueryHandler) ListForBuyer(ctx context.Context, actor auth.Identity) ([]domain.Order, error) {
	if actor.IsZero() {
		return nil, domain.ErrForbidden
	}
	return h.repo.ListByBuyer(ctx, actor.UserID)
}

// ListForRestaurant returns orders placed against a restaurant. Only the
// restaurant's owner, or an admin with read-only oversight, may call it.
func (h *ListOrdersQueryHandler) ListForRestaurant(ctx context.Context, restaurantID string, actor auth.Identity) ([]domain.Order, error) {
	restaurant, err := h.catalog.FindRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !auth.CanListRestaurantOrders(actor, restaurant.OwnerID) {
		return nil, domain.ErrForbidden
	}

	orders, err := h.repo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list restaurant orders: %w", err)
	}
	return orders, nil
}
