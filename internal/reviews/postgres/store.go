package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dinehub/dinehub/internal/reviews"
)

const uniqueViolation = "23505"

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Insert records the review and refreshes the restaurant's aggregate
// rating in the same transaction.
func (s *Store) Insert(ctx context.Context, review reviews.Review) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO reviews (id, user_id, restaurant_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		review.ID, review.UserID, review.RestaurantID, review.Rating, review.Comment, review.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return reviews.ErrDuplicateReview
		}
		return fmt.Errorf("insert review: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE restaurants
		SET rating = (SELECT AVG(rating)::float8 FROM reviews WHERE restaurant_id = $1)
		WHERE id = $1
	`, review.RestaurantID)
	if err != nil {
		return fmt.Errorf("refresh restaurant rating: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit review: %w", err)
	}
	return nil
}

func (s *Store) ListByRestaurant(ctx context.Context, restaurantID string) ([]reviews.Review, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, restaurant_id, rating, comment, created_at
		FROM reviews
		WHERE restaurant_id = $1
		ORDER BY created_at DESC
	`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var result []reviews.Review
	for rows.Next() {
		var review reviews.Review
		if err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.RestaurantID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		result = append(result, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return result, nil
}
