package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dinehub/dinehub/internal/catalog"
)

// Store is an in-memory catalog useful for local development and tests.
type Store struct {
	mu          sync.RWMutex
	restaurants map[string]catalog.Restaurant
	items       map[string]catalog.MenuItem
	referenced  map[string]bool
}

func NewStore() *Store {
	return &Store{
		restaurants: make(map[string]catalog.Restaurant),
		items:       make(map[string]catalog.MenuItem),
		referenced:  make(map[string]bool),
	}
}

// MarkReferenced records that a menu item appears in an order, which blocks
// hard deletion. Tests use it to simulate historical orders.
func (s *Store) MarkReferenced(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.referenced[id] = true
}

func (s *Store) FindRestaurant(_ context.Context, id string) (*catalog.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.restaurants[id]
	if !ok {
		return nil, catalog.ErrRestaurantNotFound
	}
	copy := r
	return &copy, nil
}

func (s *Store) FindRestaurantByOwner(_ context.Context, ownerID string) (*catalog.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.restaurants {
		if r.OwnerID == ownerID {
			copy := r
			return &copy, nil
		}
	}
	return nil, catalog.ErrRestaurantNotFound
}

func (s *Store) FindMenuItem(_ context.Context, id string) (*catalog.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, catalog.ErrMenuItemNotFound
	}
	copy := item
	return &copy, nil
}

func (s *Store) ListRestaurants(_ context.Context) ([]catalog.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]catalog.Restaurant, 0, len(s.restaurants))
	for _, r := range s.restaurants {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *Store) ListMenu(_ context.Context, restaurantID string) ([]catalog.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []catalog.MenuItem
	for _, item := range s.items {
		if item.RestaurantID == restaurantID {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *Store) CreateRestaurant(_ context.Context, r catalog.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restaurants[r.ID] = r
	return nil
}

func (s *Store) UpdateRestaurant(_ context.Context, r catalog.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.restaurants[r.ID]; !ok {
		return catalog.ErrRestaurantNotFound
	}
	s.restaurants[r.ID] = r
	return nil
}

func (s *Store) UpsertMenuItem(_ context.Context, item catalog.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
	return nil
}

func (s *Store) DeleteMenuItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return catalog.ErrMenuItemNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *Store) DisableMenuItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return catalog.ErrMenuItemNotFound
	}
	item.Available = false
	s.items[id] = item
	return nil
}

func (s *Store) MenuItemReferenced(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.referenced[id], nil
}

func (s *Store) SetRating(_ context.Context, restaurantID string, rating float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.restaurants[restaurantID]
	if !ok {
		return catalog.ErrRestaurantNotFound
	}
	r.Rating = rating
	s.restaurants[restaurantID] = r
	return nil
}
