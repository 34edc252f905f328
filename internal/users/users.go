// Package users holds the buyer profile store. The order lifecycle touches it
// only for the best-effort default-address update on order creation and for
// buyer contact details on order detail.
package users

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when the requested user does not exist.
var ErrNotFound = errors.New("user not found")

// Address is a buyer's stored delivery address.
type Address struct {
	Line1   string `json:"address_line1"`
	Line2   string `json:"address_line2,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// User is a buyer profile.
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Address   Address   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// Store exposes the profile operations the core consumes.
type Store interface {
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateAddress(ctx context.Context, id string, addr Address) error
}
