package reviews_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinehub/dinehub/internal/auth"
	"github.com/dinehub/dinehub/internal/catalog"
	catalogmemory "github.com/dinehub/dinehub/internal/catalog/memory"
	"github.com/dinehub/dinehub/internal/reviews"
	"github.com/dinehub/dinehub/internal/reviews/memory"
)

func newService(t *testing.T) (*reviews.Service, *memory.Store) {
	t.Helper()

	catalogStore := catalogmemory.NewStore()
	err := catalogStore.CreateRestaurant(context.Background(), catalog.Restaurant{
		ID:      "rest-1",
		OwnerID: "owner-1",
		Name:    "Napoli Express",
	})
	require.NoError(t, err)

	store := memory.NewStore()
	return reviews.NewService(store, catalogStore, slog.New(slog.DiscardHandler)), store
}

func TestSubmit(t *testing.T) {
	buyer := auth.Identity{UserID: "buyer-1", Role: auth.RoleUser}

	t.Run("records a review and its aggregate rating", func(t *testing.T) {
		svc, store := newService(t)

		review, err := svc.Submit(context.Background(), buyer, reviews.SubmitReviewInput{
			RestaurantID: "rest-1",
			Rating:       4,
			Comment:      "solid margherita",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, review.ID)
		assert.Equal(t, "buyer-1", review.UserID)
		assert.Equal(t, int32(4), review.Rating)
		assert.InDelta(t, 4.0, store.Rating("rest-1"), 0.001)
	})

	t.Run("aggregate rating averages all reviews", func(t *testing.T) {
		svc, store := newService(t)

		_, err := svc.Submit(context.Background(), buyer, reviews.SubmitReviewInput{RestaurantID: "rest-1", Rating: 5})
		require.NoError(t, err)

		other := auth.Identity{UserID: "buyer-2", Role: auth.RoleUser}
		_, err = svc.Submit(context.Background(), other, reviews.SubmitReviewInput{RestaurantID: "rest-1", Rating: 2})
		require.NoError(t, err)

		assert.InDelta(t, 3.5, store.Rating("rest-1"), 0.001)
	})

	t.Run("one review per user per restaurant", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Submit(context.Background(), buyer, reviews.SubmitReviewInput{RestaurantID: "rest-1", Rating: 4})
		require.NoError(t, err)

		_, err = svc.Submit(context.Background(), buyer, reviews.SubmitReviewInput{RestaurantID: "rest-1", Rating: 5})
		assert.ErrorIs(t, err, reviews.ErrDuplicateReview)
	})

	t.Run("rating must be between one and five", func(t *testing.T) {
		svc, _ := newService(t)

		for _, rating := range []int32{0, 6, -1} {
			_, err := svc.Submit(context.Background(), buyer, reviews.SubmitReviewInput{RestaurantID: "rest-1", Rating: rating})
			assert.ErrorIs(t, err, reviews.ErrInvalidRating, "rating %d", rating)
		}
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Submit(context.Background(), buyer, reviews.SubmitReviewInput{RestaurantID: "ghost", Rating: 4})
		assert.ErrorIs(t, err, catalog.ErrRestaurantNotFound)
	})
}

func TestListForRestaurant(t *testing.T) {
	t.Run("returns the restaurant's reviews", func(t *testing.T) {
		svc, _ := newService(t)

		buyer := auth.Identity{UserID: "buyer-1", Role: auth.RoleUser}
		_, err := svc.Submit(context.Background(), buyer, reviews.SubmitReviewInput{RestaurantID: "rest-1", Rating: 4})
		require.NoError(t, err)

		listed, err := svc.ListForRestaurant(context.Background(), "rest-1")
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, "buyer-1", listed[0].UserID)
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.ListForRestaurant(context.Background(), "ghost")
		assert.ErrorIs(t, err, catalog.ErrRestaurantNotFound)
	})
}
