package reviews

import (
	"context"
	"errors"
	"time"
)

var (
	ErrDuplicateReview = errors.New("review already exists for this restaurant")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

// Review is a buyer's rating of a restaurant. One review per buyer per
// restaurant.
type Review struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RestaurantID string    `json:"restaurant_id"`
	Rating       int32     `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate checks field constraints before persistence.
func (r Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

// Store persists reviews. Insert must atomically record the review and
// refresh the restaurant's aggregate rating.
type Store interface {
	Insert(ctx context.Context, review Review) error
	ListByRestaurant(ctx context.Context, restaurantID string) ([]Review, error)
}
