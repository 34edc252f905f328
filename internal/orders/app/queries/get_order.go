package queries

import (
	"context"
	"errors"
	"fmt"

	"github.com/dinehub/dinehub/internal/auth"
	"github.com/dinehub/dinehub/internal/catalog"
	"github.com/dinehub/dinehub/internal/orders/domain"
	"github.com/dinehub/dinehub/internal/orders/ports"
	"github.com/dinehub/dinehub/internal/users"
)

// GetOrderQuery requests full detail for one order on behalf of an actor.
type GetOrderQuery struct {
	OrderID string
	Actor   auth.Identity
}

// OrderDetail is the full order view: the order with its item snapshots, the
// restaurant, and the buyer's contact details.
type OrderDetail struct {
	Order      domain.Order       `json:"order"`
	Restaurant catalog.Restaurant `json:"restaurant"`
	Buyer      *users.User        `json:"buyer,omitempty"`
}

type GetOrderQueryHandler struct {
	repo    ports.OrderRepository
	catalog catalog.Store
	buyers  users.Store
}

func NewGetOrderQueryHandler(repo ports.OrderRepository, cat catalog.Store, buyers users.Store) *GetOrderQueryHandler {
	return &GetOrderQueryHandler{repo: repo, catalog: cat, buyers: buyers}
}

// Handle returns the order detail if the actor is the buyer or the owning
// restaurant's owner.
func (h *GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderDetail, error) {
	if query.OrderID == "" {
		return nil, domain.ErrOrderNotFound
	}

	order, err := h.repo.GetByID(ctx, query.OrderID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}

	restaurant, err := h.catalog.FindRestaurant(ctx, order.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("load restaurant: %w", err)
	}

	if !auth.CanAccessOrder(query.Actor, order.BuyerID, restaurant.OwnerID) {
		return nil, domain.ErrForbidden
	}

	detail := &OrderDetail{Order: *order, Restaurant: *restaurant}

	// Buyer contact is part of the fulfillment view; its absence is not fatal.
	if buyer, err := h.buyers.GetByID(ctx, order.BuyerID); err == nil {
		detail.Buyer = buyer
	}

	return detail, nil
}
