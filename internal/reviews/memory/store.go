package memory

import (
	"context"
	"sync"

	"github.com/dinehub/dinehub/internal/reviews"
)

// Store is an in-memory reviews.Store for tests and local development.
type Store struct {
	mu      sync.RWMutex
	byID    map[string]reviews.Review
	ratings map[string]float64
}

func NewStore() *Store {
	return &Store{
		byID:    make(map[string]reviews.Review),
		ratings: make(map[string]float64),
	}
}

func (s *Store) Insert(_ context.Context, review reviews.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.byID {
		if existing.UserID == review.UserID && existing.RestaurantID == review.RestaurantID {
			return reviews.ErrDuplicateReview
		}
	}
	s.byID[review.ID] = review

	var sum, count float64
	for _, existing := range s.byID {
		if existing.RestaurantID == review.RestaurantID {
			sum += float64(existing.Rating)
			count++
		}
	}
	s.ratings[review.RestaurantID] = sum / count
	return nil
}

func (s *Store) ListByRestaurant(_ context.Context, restaurantID string) ([]reviews.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []reviews.Review
	for _, review := range s.byID {
		if review.RestaurantID == restaurantID {
			result = append(result, review)
		}
	}
	return result, nil
}

// Rating returns the aggregate recorded for a restaurant.
func (s *Store) Rating(restaurantID string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ratings[restaurantID]
}
