// Package admin provides the read-only oversight surface: platform-wide
// statistics for administrators.
package admin

import (
	"context"
	"errors"
)

// ErrForbidden is returned when a non-admin requests oversight data.
var ErrForbidden = errors.New("admin role required")

// Stats is a platform-wide snapshot.
type Stats struct {
	TotalUsers       int64   `json:"total_users"`
	TotalRestaurants int64   `json:"total_restaurants"`
	TotalOrders      int64   `json:"total_orders"`
	AverageRating    float64 `json:"average_rating"`
}

// StatsSource computes a fresh stats snapshot.
type StatsSource interface {
	CollectStats(ctx context.Context) (*Stats, error)
}

// StatsCache stores recent snapshots so repeated dashboard loads do not
// hit the database.
type StatsCache interface {
	Get(ctx context.Context) (*Stats, error)
	Set(ctx context.Context, stats Stats) error
}
