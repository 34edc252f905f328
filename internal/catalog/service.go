package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dinehub/dinehub/internal/auth"
)

// Service exposes the owner-guarded catalog operations. Reads go straight to
// the Store; every write is checked against the ownership rules first.
type Service struct {
	store  ManagementStore
	logger *slog.Logger
}

func NewService(store ManagementStore, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// RestaurantInput carries the owner-editable restaurant fields.
type RestaurantInput struct {
	Name             string `json:"name"`
	City             string `json:"city"`
	Country          string `json:"country"`
	Cuisines         string `json:"cuisines"`
	DeliveryFeeMinor int64  `json:"delivery_fee_minor"`
	Available        bool   `json:"available"`
}

func (in RestaurantInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.DeliveryFeeMinor < 0 {
		return fmt.Errorf("%w: delivery fee must be non-negative", ErrInvalidInput)
	}
	return nil
}

// CreateRestaurant registers a restaurant for an actor who does not own one
// yet. One restaurant per owner is enforced both here and by a unique
// constraint on owner_id.
func (s *Service) CreateRestaurant(ctx context.Context, actor auth.Identity, in RestaurantInput) (*Restaurant, error) {
	if actor.IsZero() {
		return nil, ErrForbidden
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	if existing, err := s.store.FindRestaurantByOwner(ctx, actor.UserID); err == nil && existing != nil {
		return nil, ErrAlreadyOwner
	} else if err != nil && !errors.Is(err, ErrRestaurantNotFound) {
		return nil, fmt.Errorf("check existing restaurant: %w", err)
	}

	r := Restaurant{
		ID:               uuid.NewString(),
		OwnerID:          actor.UserID,
		Name:             in.Name,
		City:             in.City,
		Country:          in.Country,
		Cuisines:         in.Cuisines,
		DeliveryFeeMinor: in.DeliveryFeeMinor,
		Available:        in.Available,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.store.CreateRestaurant(ctx, r); err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}

	s.logger.InfoContext(ctx, "restaurant created", "restaurant_id", r.ID, "owner_id", r.OwnerID)
	return &r, nil
}

// UpdateRestaurant mutates restaurant fields; only the owner may do so.
func (s *Service) UpdateRestaurant(ctx context.Context, actor auth.Identity, restaurantID string, in RestaurantInput) (*Restaurant, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	r, err := s.store.FindRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !auth.CanMutateRestaurant(actor, r.OwnerID) {
		return nil, ErrForbidden
	}

	r.Name = in.Name
	r.City = in.City
	r.Country = in.Country
	r.Cuisines = in.Cuisines
	r.DeliveryFeeMinor = in.DeliveryFeeMinor
	r.Available = in.Available

	if err := s.store.UpdateRestaurant(ctx, *r); err != nil {
		return nil, fmt.Errorf("update restaurant: %w", err)
	}
	return r, nil
}

// MenuItemInput carries the owner-editable menu item fields.
type MenuItemInput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	PriceMinor int64  `json:"price_minor"`
	Available  bool   `json:"available"`
}

// UpsertMenuItem creates or updates a menu item on the actor's restaurant.
func (s *Service) UpsertMenuItem(ctx context.Context, actor auth.Identity, restaurantID string, in MenuItemInput) (*MenuItem, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.PriceMinor < 0 {
		return nil, fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}

	r, err := s.store.FindRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !auth.CanMutateRestaurant(actor, r.OwnerID) {
		return nil, ErrForbidden
	}

	item := MenuItem{
		ID:           in.ID,
		RestaurantID: restaurantID,
		Name:         in.Name,
		Category:     in.Category,
		PriceMinor:   in.PriceMinor,
		Available:    in.Available,
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
		item.CreatedAt = time.Now().UTC()
	}

	if err := s.store.UpsertMenuItem(ctx, item); err != nil {
		return nil, fmt.Errorf("upsert menu item: %w", err)
	}
	return &item, nil
}

// RemoveMenuItem removes a menu item from the actor's restaurant. Items that
// appear in any historical order are soft-disabled instead of deleted so the
// financial record stays intact.
func (s *Service) RemoveMenuItem(ctx context.Context, actor auth.Identity, itemID string) error {
	item, err := s.store.FindMenuItem(ctx, itemID)
	if err != nil {
		return err
	}

	r, err := s.store.FindRestaurant(ctx, item.RestaurantID)
	if err != nil {
		return err
	}
	if !auth.CanMutateRestaurant(actor, r.OwnerID) {
		return ErrForbidden
	}

	referenced, err := s.store.MenuItemReferenced(ctx, itemID)
	if err != nil {
		return fmt.Errorf("check menu item references: %w", err)
	}
	if referenced {
		s.logger.InfoContext(ctx, "menu item referenced by orders, disabling instead of deleting", "menu_item_id", itemID)
		return s.store.DisableMenuItem(ctx, itemID)
	}
	return s.store.DeleteMenuItem(ctx, itemID)
}

// GetRestaurant returns a restaurant with no authorization requirement;
// browsing is public.
func (s *Service) GetRestaurant(ctx context.Context, id string) (*Restaurant, error) {
	return s.store.FindRestaurant(ctx, id)
}

// ListRestaurants returns all restaurants for browsing.
func (s *Service) ListRestaurants(ctx context.Context) ([]Restaurant, error) {
	return s.store.ListRestaurants(ctx)
}

// ListMenu returns a restaurant's menu.
func (s *Service) ListMenu(ctx context.Context, restaurantID string) ([]MenuItem, error) {
	if _, err := s.store.FindRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	return s.store.ListMenu(ctx, restaurantID)
}
