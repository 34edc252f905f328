package domain

import (
	"time"
)

// OrderStatus captures the lifecycle of an order. The string values are
// persisted and exposed on the wire verbatim.
type OrderStatus string

const (
	StatusPendingPayment OrderStatus = "pending_payment"
	StatusPaid           OrderStatus = "paid"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// transitions is the reachability graph. cancelled is reachable from every
// non-terminal state; delivered and cancelled are terminal.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPendingPayment: {StatusPaid, StatusPreparing, StatusCancelled},
	StatusPaid:           {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
	StatusDelivered:      nil,
	StatusCancelled:      nil,
}

// Valid reports whether the status is one of the enumerated values.
func (s OrderStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is permitted.
func (s OrderStatus) IsTerminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// AllowedPredecessors returns every status from which next is reachable. The
// repository uses this set as the predicate of its conditional update so that
// concurrent transitions serialize on the database row.
func AllowedPredecessors(next OrderStatus) []OrderStatus {
	var from []OrderStatus
	for status, reachable := range transitions {
		for _, target := range reachable {
			if target == next {
				from = append(from, status)
			}
		}
	}
	return from
}

// OrderItem is the financial record of a single line: the price is a snapshot
// of the menu item's catalog price at order-creation time and is never
// re-read afterwards.
type OrderItem struct {
	ID         string `json:"id"`
	OrderID    string `json:"order_id"`
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int32  `json:"quantity"`
	PriceMinor int64  `json:"price_minor"`
}

// Order is a purchase against a single restaurant. TotalMinor is computed
// once at creation from the catalog prices plus the delivery fee and is never
// recomputed from the items.
type Order struct {
	ID           string      `json:"id"`
	BuyerID      string      `json:"buyer_id"`
	RestaurantID string      `json:"restaurant_id"`
	TotalMinor   int64       `json:"total_minor"`
	Status       OrderStatus `json:"status"`
	Items        []OrderItem `json:"items"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Validate ensures the order adheres to business constraints.
func (o Order) Validate() error {
	if o.BuyerID == "" {
		return ErrBuyerRequired
	}
	if o.RestaurantID == "" {
		return ErrRestaurantRequired
	}
	if len(o.Items) == 0 {
		return ErrEmptyOrder
	}
	if o.TotalMinor < 0 {
		return ErrTotalNegative
	}
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return ErrQuantityInvalid
		}
		if item.PriceMinor < 0 {
			return ErrPriceNegative
		}
	}
	return nil
}
