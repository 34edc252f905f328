package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dinehub/dinehub/internal/auth"
	"github.com/dinehub/dinehub/internal/catalog"
	"github.com/dinehub/dinehub/internal/orders/app/commands"
	"github.com/dinehub/dinehub/internal/orders/domain"
	"github.com/dinehub/dinehub/internal/users"
)

func testCatalog() *mockCatalog {
	menu := map[string]*catalog.MenuItem{
		"menu-pizza": {ID: "menu-pizza", RestaurantID: "rest-1", Name: "Margherita", PriceMinor: 1200, Available: true},
		"menu-cola":  {ID: "menu-cola", RestaurantID: "rest-1", Name: "Cola", PriceMinor: 150, Available: true},
	}
	return &mockCatalog{
		findRestaurantFn: func(_ context.Context, id string) (*catalog.Restaurant, error) {
			if id != "rest-1" {
				return nil, catalog.ErrRestaurantNotFound
			}
			return &catalog.Restaurant{ID: "rest-1", OwnerID: "owner-1", Name: "Pizza Place", DeliveryFeeMinor: 250}, nil
		},
		findMenuItemFn: func(_ context.Context, id string) (*catalog.MenuItem, error) {
			item, ok := menu[id]
			if !ok {
				return nil, catalog.ErrMenuItemNotFound
			}
			return item, nil
		},
	}
}

func buyer() auth.Identity {
	return auth.Identity{UserID: "buyer-1", Role: auth.RoleUser}
}

func TestCreateOrder(t *testing.T) {
	t.Run("snapshots catalog prices and sums the total with the delivery fee", func(t *testing.T) {
		var persisted *domain.Order
		repo := &mockRepository{
			createWithItemsFn: func(_ context.Context, order domain.Order) error {
				persisted = &order
				return nil
			},
		}
		handler := commands.NewCreateOrderCommandHandler(repo, testCatalog(), &mockUsers{}, &mockEventBus{}, testLogger())

		created, err := handler.Handle(context.Background(), commands.CreateOrderCommand{
			Actor:        buyer(),
			RestaurantID: "rest-1",
			Items: []commands.CreateOrderItemInput{
				{MenuItemID: "menu-pizza", Quantity: 2},
			},
		})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}

		if created.Order.Status != domain.StatusPendingPayment {
			t.Errorf("expected status pending_payment, got %s", created.Order.Status)
		}
		// 2 x 1200 + 250 delivery fee
		if created.Order.TotalMinor != 2650 {
			t.Errorf("expected total 2650, got %d", created.Order.TotalMinor)
		}
		if created.Order.BuyerID != "buyer-1" {
			t.Errorf("expected buyer-1, got %s", created.Order.BuyerID)
		}
		if created.Restaurant.ID != "rest-1" {
			t.Errorf("expected restaurant rest-1, got %s", created.Restaurant.ID)
		}

		if persisted == nil {
			t.Fatal("expected order to be persisted")
		}
		if len(persisted.Items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(persisted.Items))
		}
		item := persisted.Items[0]
		if item.Name != "Margherita" || item.PriceMinor != 1200 || item.Quantity != 2 {
			t.Errorf("unexpected snapshot: %+v", item)
		}
		if item.OrderID != persisted.ID {
			t.Errorf("item order id %s does not match order %s", item.OrderID, persisted.ID)
		}
	})

	t.Run("sums multiple lines", func(t *testing.T) {
		repo := &mockRepository{}
		handler := commands.NewCreateOrderCommandHandler(repo, testCatalog(), &mockUsers{}, &mockEventBus{}, testLogger())

		created, err := handler.Handle(context.Background(), commands.CreateOrderCommand{
			Actor:        buyer(),
			RestaurantID: "rest-1",
			Items: []commands.CreateOrderItemInput{
				{MenuItemID: "menu-pizza", Quantity: 1},
				{MenuItemID: "menu-cola", Quantity: 3},
			},
		})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		// 1200 + 3 x 150 + 250
		if created.Order.TotalMinor != 1900 {
			t.Errorf("expected total 1900, got %d", created.Order.TotalMinor)
		}
	})

	t.Run("rejects unauthenticated actor", func(t *testing.T) {
		handler := commands.NewCreateOrderCommandHandler(&mockRepository{}, testCatalog(), &mockUsers{}, &mockEventBus{}, testLogger())

		_, err := handler.Handle(context.Background(), commands.CreateOrderCommand{
			RestaurantID: "rest-1",
			Items:        []commands.CreateOrderItemInput{{MenuItemID: "menu-pizza", Quantity: 1}},
		})
		if !errors.Is(err, domain.ErrBuyerRequired) {
			t.Errorf("expected ErrBuyerRequired, got %v", err)
		}
	})

	t.Run("rejects empty cart", func(t *testing.T) {
		handler := commands.NewCreateOrderCommandHandler(&mockRepository{}, testCatalog(), &mockUsers{}, &mockEventBus{}, testLogger())

		_, err := handler.Handle(context.Background(), commands.CreateOrderCommand{
			Actor:        buyer(),
			RestaurantID: "rest-1",
		})
		if !errors.Is(err, domain.ErrEmptyOrder) {
			t.Errorf("expected ErrEmptyOrder, got %v", err)
		}
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		handler := commands.NewCreateOrderCommandHandler(&mockRepository{}, testCatalog(), &mockUsers{}, &mockEventBus{}, testLogger())

		_, err := handler.Handle(context.Background(), commands.CreateOrderCommand{
			Actor:        buyer(),
			RestaurantID: "rest-1",
			Items:        []commands.CreateOrderItemInput{{MenuItemID: "menu-pizza", Quantity: 0}},
		})
		if !errors.Is(err, domain.ErrQuantityInvalid) {
			t.Errorf("expected ErrQuantityInvalid, got %v", err)
		}
	})

	t.Run("fails when restaurant does not exist", func(t *testing.T) {
		handler := commands.NewCreateOrderCommandHandler(&mockRepository{}, testCatalog(), &mockUsers{}, &mockEventBus{}, testLogger())

		_, err := handler.Handle(context.Background(), commands.CreateOrderCommand{
			Actor:        buyer(),
			RestaurantID: "rest-unknown",
			Items:        []commands.CreateOrderItemInput{{MenuItemID: "menu-pizza", Quantity: 1}},
		})
		if !errors.Is(err, catalog.ErrRestaurantNotFound) {
			t.Errorf("expected ErrRestaurantNotFound, got %v", err)
		}
	})

	t.Run("fails when a menu item does not exist", func(t *testing.T) {
		handler := commands.NewCreateOrderCommandHandler(&mockRepository{}, testCatalog(), &mockUsers{}, &mockEventBus{}, testLogger())

		_, err := handler.Handle(context.Background(), commands.CreateOrderCommand{
			Actor:        buyer(),
			RestaurantID: "rest-1",
			Items:        []commands.CreateOrderItemInput{{MenuItemID: "menu-unknown", Quantity: 1}},
		})
		if !errors.Is(err, catalog.ErrMenuItemNotFound) {
			t.Errorf("expected ErrMenuItemNotFound, got %v", err)
		}
	})

	t.Run("propagates repository failures", func(t *testing.T) {
		repo := &mockRepository{
			createWithItemsFn: func(context.Context, domain.Order) error {
				return errors.New("connection reset")
			},
		}
		handler := commands.NewCreateOrderCommandHandler(repo, testCatalog(), &mockUsers{}, &mockEventBus{}, testLogger())

		_, err := handler.Handle(context.Background(), commands.CreateOrderCommand{
			Actor:        buyer(),
			RestaurantID: "rest-1",
			Items:        []commands.CreateOrderItemInput{{MenuItemID: "menu-pizza", Quantity: 1}},
		})
		if err == nil {
			t.Fatal("expected error when persistence fails")
		}
	})

	t.Run("address update failure does not fail the order", func(t *testing.T) {
		buyers := &mockUsers{
			updateAddressFn: func(context.Context, string, users.Address) error {
				return errors.New("users table unavailable")
			},
		}
		handler := commands.NewCreateOrderCommandHandler(&mockRepository{}, testCatalog(), buyers, &mockEventBus{}, testLogger())

		created, err := handler.Handle(context.Background(), commands.CreateOrderCommand{
			Actor:        buyer(),
			RestaurantID: "rest-1",
			Items:        []commands.CreateOrderItemInput{{MenuItemID: "menu-pizza", Quantity: 1}},
			Delivery:     &users.Address{Line1: "1 High Street"},
		})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if created == nil {
			t.Fatal("expected created order")
		}
	})

	t.Run("publish failure does not fail the order", func(t *testing.T) {
		events := &mockEventBus{
			publishOrderCreatedFn: func(context.Context, domain.Order) error {
				return errors.New("broker unavailable")
			},
		}
		handler := commands.NewCreateOrderCommandHandler(&mockRepository{}, testCatalog(), &mockUsers{}, events, testLogger())

		_, err := handler.Handle(context.Background(), commands.CreateOrderCommand{
			Actor:        buyer(),
			RestaurantID: "rest-1",
			Items:        []commands.CreateOrderItemInput{{MenuItemID: "menu-pizza", Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
	})
}
