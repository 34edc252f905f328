package commands_test

import (
	"context"
	"log/slog"

	"github.com/dinehub/dinehub/internal/catalog"
	"github.com/dinehub/dinehub/internal/orders/domain"
	"github.com/dinehub/dinehub/internal/users"
)

type mockRepository struct {
	createWithItemsFn  func(ctx context.Context, order domain.Order) error
	getByIDFn          func(ctx context.Context, id string) (*domain.Order, error)
	transitionStatusFn func(ctx context.Context, id string, next domain.OrderStatus, allowedFrom []domain.OrderStatus) (*domain.Order, error)
}

func (m *mockRepository) CreateWithItems(ctx context.Context, order domain.Order) error {
	if m.createWithItemsFn != nil {
		return m.createWithItemsFn(ctx, order)
	}
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockRepository) ListByBuyer(context.Context, string) ([]domain.Order, error) {
	return nil, nil
}

func (m *mockRepository) ListByRestaurant(context.Context, string) ([]domain.Order, error) {
	return nil, nil
}

func (m *mockRepository) TransitionStatus(ctx context.Context, id string, next domain.OrderStatus, allowedFrom []domain.OrderStatus) (*domain.Order, error) {
	if m.transitionStatusFn != nil {
		return m.transitionStatusFn(ctx, id, next, allowedFrom)
	}
	return &domain.Order{ID: id, Status: next}, nil
}

type mockCatalog struct {
	findRestaurantFn func(ctx context.Context, id string) (*catalog.Restaurant, error)
	findMenuItemFn   func(ctx context.Context, id string) (*catalog.MenuItem, error)
}

func (m *mockCatalog) FindRestaurant(ctx context.Context, id string) (*catalog.Restaurant, error) {
	if m.findRestaurantFn != nil {
		return m.findRestaurantFn(ctx, id)
	}
	return nil, catalog.ErrRestaurantNotFound
}

func (m *mockCatalog) FindRestaurantByOwner(context.Context, string) (*catalog.Restaurant, error) {
	return nil, catalog.ErrRestaurantNotFound
}

func (m *mockCatalog) FindMenuItem(ctx context.Context, id string) (*catalog.MenuItem, error) {
	if m.findMenuItemFn != nil {
		return m.findMenuItemFn(ctx, id)
	}
	return nil, catalog.ErrMenuItemNotFound
}

func (m *mockCatalog) ListRestaurants(context.Context) ([]catalog.Restaurant, error) {
	return nil, nil
}

func (m *mockCatalog) ListMenu(context.Context, string) ([]catalog.MenuItem, error) {
	return nil, nil
}

type mockUsers struct {
	updateAddressFn func(ctx context.Context, id string, addr users.Address) error
}

func (m *mockUsers) GetByID(context.Context, string) (*users.User, error) {
	return nil, users.ErrNotFound
}

func (m *mockUsers) UpdateAddress(ctx context.Context, id string, addr users.Address) error {
	if m.updateAddressFn != nil {
		return m.updateAddressFn(ctx, id, addr)
	}
	return nil
}

type mockEventBus struct {
	publishOrderCreatedFn       func(ctx context.Context, order domain.Order) error
	publishOrderPaidFn          func(ctx context.Context, orderID string) error
	publishOrderStatusChangedFn func(ctx context.Context, orderID string, from, to domain.OrderStatus) error
}

func (m *mockEventBus) PublishOrderCreated(ctx context.Context, order domain.Order) error {
	if m.publishOrderCreatedFn != nil {
		return m.publishOrderCreatedFn(ctx, order)
	}
	return nil
}

func (m *mockEventBus) PublishOrderPaid(ctx context.Context, orderID string) error {
	if m.publishOrderPaidFn != nil {
		return m.publishOrderPaidFn(ctx, orderID)
	}
	return nil
}

func (m *mockEventBus) PublishOrderStatusChanged(ctx context.Context, orderID string, from, to domain.OrderStatus) error {
	if m.publishOrderStatusChangedFn != nil {
		return m.publishOrderStatusChangedFn(ctx, orderID, from, to)
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
