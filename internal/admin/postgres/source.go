package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dinehub/dinehub/internal/admin"
)

type Source struct {
	pool *pgxpool.Pool
}

func NewSource(pool *pgxpool.Pool) *Source {
	return &Source{pool: pool}
}

// CollectStats computes the platform snapshot in one round trip.
func (s *Source) CollectStats(ctx context.Context) (*admin.Stats, error) {
	var stats admin.Stats
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM restaurants),
			(SELECT COUNT(*) FROM orders),
			(SELECT COALESCE(AVG(rating), 0)::float8 FROM reviews)
	`).Scan(
		&stats.TotalUsers,
		&stats.TotalRestaurants,
		&stats.TotalOrders,
		&stats.AverageRating,
	)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	return &stats, nil
}
