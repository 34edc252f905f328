// Package catalog holds the restaurant and menu data that order pricing
// treats as ground truth. The order lifecycle only ever reads from it; menu
// content is written by the owner-facing management service in this package.
package catalog

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrRestaurantNotFound is returned when a restaurant id does not resolve.
	ErrRestaurantNotFound = errors.New("restaurant not found")
	// ErrMenuItemNotFound is returned when a menu item id does not resolve.
	ErrMenuItemNotFound = errors.New("menu item not found")
	// ErrAlreadyOwner is returned when a user who already owns a restaurant
	// attempts to create a second one.
	ErrAlreadyOwner = errors.New("user already owns a restaurant")
	// ErrForbidden is returned when the actor is not the restaurant's owner.
	ErrForbidden = errors.New("not authorized for this restaurant")
	// ErrInvalidInput is returned for malformed restaurant or menu payloads.
	ErrInvalidInput = errors.New("invalid input")
)

// Restaurant is a catalog entry. DeliveryFeeMinor and MenuItem.PriceMinor are
// the authoritative prices in minor currency units (pence).
type Restaurant struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"owner_id"`
	Name             string    `json:"name"`
	City             string    `json:"city"`
	Country          string    `json:"country"`
	Cuisines         string    `json:"cuisines"`
	DeliveryFeeMinor int64     `json:"delivery_fee_minor"`
	Available        bool      `json:"available"`
	Rating           float64   `json:"rating"`
	CreatedAt        time.Time `json:"created_at"`
}

// MenuItem is a priced item on a restaurant's menu. Once referenced by an
// order it is never hard-deleted, only marked unavailable.
type MenuItem struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	PriceMinor   int64     `json:"price_minor"`
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store is the read surface the order lifecycle consumes.
type Store interface {
	FindRestaurant(ctx context.Context, id string) (*Restaurant, error)
	FindRestaurantByOwner(ctx context.Context, ownerID string) (*Restaurant, error)
	FindMenuItem(ctx context.Context, id string) (*MenuItem, error)
	ListRestaurants(ctx context.Context) ([]Restaurant, error)
	ListMenu(ctx context.Context, restaurantID string) ([]MenuItem, error)
}

// ManagementStore extends Store with the writes used by the owner-facing
// management service.
type ManagementStore interface {
	Store

	CreateRestaurant(ctx context.Context, r Restaurant) error
	UpdateRestaurant(ctx context.Context, r Restaurant) error
	UpsertMenuItem(ctx context.Context, item MenuItem) error
	DeleteMenuItem(ctx context.Context, id string) error
	DisableMenuItem(ctx context.Context, id string) error
	// MenuItemReferenced reports whether any order item references the menu
	// item, which forbids hard deletion.
	MenuItemReferenced(ctx context.Context, id string) (bool, error)
	// SetRating persists a recomputed aggregate rating.
	SetRating(ctx context.Context, restaurantID string, rating float64) error
}
