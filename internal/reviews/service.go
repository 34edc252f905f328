package reviews

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dinehub/dinehub/internal/auth"
	"github.com/dinehub/dinehub/internal/catalog"
)

// Service handles review submission and listing.
type Service struct {
	store   Store
	catalog catalog.Store
	logger  *slog.Logger
}

func NewService(store Store, cat catalog.Store, logger *slog.Logger) *Service {
	return &Service{store: store, catalog: cat, logger: logger}
}

// SubmitReviewInput carries a new review request.
type SubmitReviewInput struct {
	RestaurantID string
	Rating       int32
	Comment      string
}

// Submit records a review by the acting user. The restaurant must exist
// and the user may review each restaurant at most once.
func (s *Service) Submit(ctx context.Context, actor auth.Identity, input SubmitReviewInput) (*Review, error) {
	if _, err := s.catalog.FindRestaurant(ctx, input.RestaurantID); err != nil {
		return nil, fmt.Errorf("find restaurant: %w", err)
	}

	review := Review{
		ID:           uuid.NewString(),
		UserID:       actor.UserID,
		RestaurantID: input.RestaurantID,
		Rating:       input.Rating,
		Comment:      input.Comment,
		CreatedAt:    time.Now().UTC(),
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.Insert(ctx, review); err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}

	s.logger.InfoContext(ctx, "review submitted",
		"review_id", review.ID,
		"restaurant_id", review.RestaurantID,
		"rating", review.Rating,
	)
	return &review, nil
}

// ListForRestaurant returns a restaurant's reviews, newest first.
func (s *Service) ListForRestaurant(ctx context.Context, restaurantID string) ([]Review, error) {
	if _, err := s.catalog.FindRestaurant(ctx, restaurantID); err != nil {
		return nil, fmt.Errorf("find restaurant: %w", err)
	}
	return s.store.ListByRestaurant(ctx, restaurantID)
}
