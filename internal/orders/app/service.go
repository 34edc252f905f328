package app

import (
	"context"
	"log/slog"

	"github.com/dinehub/dinehub/internal/auth"
	"github.com/dinehub/dinehub/internal/catalog"
	"github.com/dinehub/dinehub/internal/orders/app/commands"
	"github.com/dinehub/dinehub/internal/orders/app/queries"
	"github.com/dinehub/dinehub/internal/orders/domain"
	"github.com/dinehub/dinehub/internal/orders/metrics"
	"github.com/dinehub/dinehub/internal/orders/ports"
	"github.com/dinehub/dinehub/internal/users"
)

// Service bundles the order lifecycle use cases behind one API surface.
type Service struct {
	idemStore  ports.IdempotencyStore
	create     commands.CreateOrderHandler
	transition commands.TransitionOrderHandler
	getOrder   *queries.GetOrderQueryHandler
	listOrders *queries.ListOrdersQueryHandler
}

// NewService wires the handlers with their observability decorators.
func NewService(
	repo ports.OrderRepository,
	cat catalog.Store,
	buyers users.Store,
	events ports.EventBus,
	idem ports.IdempotencyStore,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Service {
	createCore := commands.NewCreateOrderCommandHandler(repo, cat, buyers, events, logger)
	transitionCore := commands.NewTransitionOrderCommandHandler(repo, cat, events, logger)

	return &Service{
		idemStore:  idem,
		create:     commands.NewObservableCreateOrderHandler(createCore, logger, m),
		transition: commands.NewObservableTransitionOrderHandler(transitionCore, logger, m),
		getOrder:   queries.NewGetOrderQueryHandler(repo, cat, buyers),
		listOrders: queries.NewListOrdersQueryHandler(repo, cat),
	}
}

// CreateOrder validates the cart against the catalog and persists a
// pending_payment order with snapshotted prices.
func (s *Service) CreateOrder(ctx context.Context, cmd commands.CreateOrderCommand) (*commands.CreatedOrder, error) {
	return s.create.Handle(ctx, cmd)
}

// TransitionOrder advances the order state machine on behalf of an actor.
func (s *Service) TransitionOrder(ctx context.Context, orderID string, actor auth.Identity, next domain.OrderStatus) (*domain.Order, error) {
	return s.transition.Handle(ctx, commands.TransitionOrderCommand{
		OrderID: orderID,
		Actor:   actor,
		Next:    next,
	})
}

// GetOrder returns full order detail for an authorized actor.
func (s *Service) GetOrder(ctx context.Context, orderID string, actor auth.Identity) (*queries.OrderDetail, error) {
	return s.getOrder.Handle(ctx, queries.GetOrderQuery{OrderID: orderID, Actor: actor})
}

// ListOrdersForBuyer returns the actor's own orders, newest first.
func (s *Service) ListOrdersForBuyer(ctx context.Context, actor auth.Identity) ([]domain.Order, error) {
	return s.listOrders.ListForBuyer(ctx, actor)
}

// ListOrdersForRestaurant returns a restaurant's orders for its owner.
func (s *Service) ListOrdersForRestaurant(ctx context.Context, restaurantID string, actor auth.Identity) ([]domain.Order, error) {
	return s.listOrders.ListForRestaurant(ctx, restaurantID, actor)
}

// SaveIdempotentResponse writes response details for a key.
func (s *Service) SaveIdempotentResponse(ctx context.Context, key string, response ports.StoredResponse) error {
	return s.idemStore.Save(ctx, key, response)
}

// GetIdempotentResponse retrieves previously stored response data.
func (s *Service) GetIdempotentResponse(ctx context.Context, key string) (*ports.StoredResponse, error) {
	return s.idemStore.Get(ctx, key)
}
