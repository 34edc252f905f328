package domain

import "errors"

var (
	// ErrOrderNotFound is returned when the requested order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrForbidden is returned when the actor may not read or mutate the order.
	ErrForbidden = errors.New("not authorized for this order")
	// ErrInvalidStatus is returned for a status value outside the enumeration.
	ErrInvalidStatus = errors.New("invalid status value")
	// ErrInvalidTransition is returned when the target status is not reachable
	// from the order's current status.
	ErrInvalidTransition = errors.New("status transition not allowed")

	ErrBuyerRequired      = errors.New("buyer_id is required")
	ErrRestaurantRequired = errors.New("restaurant_id is required")
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrQuantityInvalid    = errors.New("item quantity must be greater than zero")
	ErrPriceNegative      = errors.New("item price must be non-negative")
	ErrTotalNegative      = errors.New("total must be non-negative")
)
