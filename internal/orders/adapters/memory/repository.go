package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dinehub/dinehub/internal/orders/domain"
	"github.com/dinehub/dinehub/internal/orders/ports"
)

// Repository provides an in-memory order store useful for local development
// and tests. The mutex gives TransitionStatus the same serialization
// guarantee the conditional UPDATE gives the postgres adapter.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewRepository() *Repository {
	return &Repository{orders: make(map[string]domain.Order)}
}

func (r *Repository) CreateWithItems(_ context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = order
	return nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copy := order
	return &copy, nil
}

func (r *Repository) ListByBuyer(_ context.Context, buyerID string) ([]domain.Order, error) {
	return r.listBy(func(o domain.Order) bool { return o.BuyerID == buyerID }), nil
}

func (r *Repository) ListByRestaurant(_ context.Context, restaurantID string) ([]domain.Order, error) {
	return r.listBy(func(o domain.Order) bool { return o.RestaurantID == restaurantID }), nil
}

func (r *Repository) listBy(match func(domain.Order) bool) []domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Order
	for _, order := range r.orders {
		if match(order) {
			result = append(result, order)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (r *Repository) TransitionStatus(_ context.Context, id string, next domain.OrderStatus, allowedFrom []domain.OrderStatus) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}

	allowed := false
	for _, status := range allowedFrom {
		if order.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ports.ErrStatusConflict
	}

	order.Status = next
	order.UpdatedAt = time.Now().UTC()
	r.orders[id] = order

	copy := order
	return &copy, nil
}
