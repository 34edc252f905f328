package ports

import (
	"context"
	"errors"

	"github.com/dinehub/dinehub/internal/orders/domain"
)

// OrderRepository exposes the persistence operations required by the
// application layer. CreateWithItems and TransitionStatus are the two atomic
// units the state machine relies on.
type OrderRepository interface {
	// CreateWithItems persists the order and all of its items in one
	// transaction; a partial write must be impossible.
	CreateWithItems(ctx context.Context, order domain.Order) error

	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// ListByBuyer and ListByRestaurant return orders newest first.
	ListByBuyer(ctx context.Context, buyerID string) ([]domain.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Order, error)

	// TransitionStatus atomically moves the order to next, but only if its
	// current status is in allowedFrom. Concurrent attempts serialize on the
	// row; a losing attempt sees ErrStatusConflict and must re-read to decide
	// what actually happened.
	TransitionStatus(ctx context.Context, id string, next domain.OrderStatus, allowedFrom []domain.OrderStatus) (*domain.Order, error)
}

var (
	// ErrNotFound is returned when the requested order does not exist.
	ErrNotFound = errors.New("order not found")
	// ErrStatusConflict is returned when a conditional transition found the
	// order in a status outside the allowed set.
	ErrStatusConflict = errors.New("order status conflict")
)
