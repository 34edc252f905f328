package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dinehub/dinehub/internal/auth"
	"github.com/dinehub/dinehub/internal/catalog"
	"github.com/dinehub/dinehub/internal/orders/domain"
	"github.com/dinehub/dinehub/internal/orders/ports"
	"github.com/dinehub/dinehub/internal/users"
)

// CreateOrderItemInput is one requested cart line. The client supplies only
// the menu item id and quantity; prices always come from the catalog.
type CreateOrderItemInput struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int32  `json:"quantity"`
}

type CreateOrderCommand struct {
	Actor        auth.Identity
	RestaurantID string
	Items        []CreateOrderItemInput
	Delivery     *users.Address
}

func (c CreateOrderCommand) Validate() error {
	if c.Actor.IsZero() {
		return domain.ErrBuyerRequired
	}
	if c.RestaurantID == "" {
		return domain.ErrRestaurantRequired
	}
	if len(c.Items) == 0 {
		return domain.ErrEmptyOrder
	}
	for _, item := range c.Items {
		if item.Quantity <= 0 {
			return domain.ErrQuantityInvalid
		}
		if item.MenuItemID == "" {
			return fmt.Errorf("%w: menu_item_id is required", domain.ErrQuantityInvalid)
		}
	}
	return nil
}

// CreatedOrder is the result of a successful creation, with the restaurant
// eagerly loaded for the response.
type CreatedOrder struct {
	Order      domain.Order       `json:"order"`
	Restaurant catalog.Restaurant `json:"restaurant"`
}

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd CreateOrderCommand) (*CreatedOrder, error)
}

// CreateOrderCommandHandler reserves authoritative prices from the catalog,
// computes the total once, and persists the order with its item snapshots as
// a single atomic unit.
type CreateOrderCommandHandler struct {
	repo    ports.OrderRepository
	catalog catalog.Store
	buyers  users.Store
	events  ports.EventBus
	logger  *slog.Logger
}

func NewCreateOrderCommandHandler(
	repo ports.OrderRepository,
	cat catalog.Store,
	buyers users.Store,
	events ports.EventBus,
	logger *slog.Logger,
) *CreateOrderCommandHandler {
	return &CreateOrderCommandHandler{
		repo:    repo,
		catalog: cat,
		buyers:  buyers,
		events:  events,
		logger:  logger,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*CreatedOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	restaurant, err := h.catalog.FindRestaurant(ctx, cmd.RestaurantID)
	if err != nil {
		return nil, err
	}

	orderID := uuid.NewString()
	now := time.Now().UTC()

	var total int64
	items := make([]domain.OrderItem, 0, len(cmd.Items))
	for _, requested := range cmd.Items {
		menuItem, err := h.catalog.FindMenuItem(ctx, requested.MenuItemID)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.OrderItem{
			ID:         uuid.NewString(),
			OrderID:    orderID,
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Quantity:   requested.Quantity,
			PriceMinor: menuItem.PriceMinor,
		})
		total += int64(requested.Quantity) * menuItem.PriceMinor
	}
	total += restaurant.DeliveryFeeMinor

	order := domain.Order{
		ID:           orderID,
		BuyerID:      cmd.Actor.UserID,
		RestaurantID: restaurant.ID,
		TotalMinor:   total,
		Status:       domain.StatusPendingPayment,
		Items:        items,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	if err := h.repo.CreateWithItems(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	// Best-effort side effects: neither a failed address update nor a failed
	// publish rolls back the committed order.
	if cmd.Delivery != nil && cmd.Delivery.Line1 != "" {
		if err := h.buyers.UpdateAddress(ctx, cmd.Actor.UserID, *cmd.Delivery); err != nil {
			h.logger.WarnContext(ctx, "failed to update buyer address", "error", err, "buyer_id", cmd.Actor.UserID)
		}
	}
	if err := h.events.PublishOrderCreated(ctx, order); err != nil {
		h.logger.WarnContext(ctx, "failed to publish order_created", "error", err, "order_id", order.ID)
	}

	return &CreatedOrder{Order: order, Restaurant: *restaurant}, nil
}
