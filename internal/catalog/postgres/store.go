package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dinehub/dinehub/internal/catalog"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const restaurantColumns = `id, owner_id, name, city, country, cuisines, delivery_fee_minor, available, rating, created_at`

func scanRestaurant(row pgx.Row) (*catalog.Restaurant, error) {
	var r catalog.Restaurant
	err := row.Scan(
		&r.ID,
		&r.OwnerID,
		&r.Name,
		&r.City,
		&r.Country,
		&r.Cuisines,
		&r.DeliveryFeeMinor,
		&r.Available,
		&r.Rating,
		&r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("scan restaurant: %w", err)
	}
	return &r, nil
}

func (s *Store) FindRestaurant(ctx context.Context, id string) (*catalog.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`
	return scanRestaurant(s.pool.QueryRow(ctx, query, id))
}

func (s *Store) FindRestaurantByOwner(ctx context.Context, ownerID string) (*catalog.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE owner_id = $1`
	return scanRestaurant(s.pool.QueryRow(ctx, query, ownerID))
}

func (s *Store) FindMenuItem(ctx context.Context, id string) (*catalog.MenuItem, error) {
	query := `
		SELECT id, restaurant_id, name, category, price_minor, available, created_at
		FROM menu_items
		WHERE id = $1
	`

	var item catalog.MenuItem
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.RestaurantID,
		&item.Name,
		&item.Category,
		&item.PriceMinor,
		&item.Available,
		&item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("select menu item: %w", err)
	}
	return &item, nil
}

func (s *Store) ListRestaurants(ctx context.Context) ([]catalog.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants ORDER BY name`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []catalog.Restaurant
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate restaurants: %w", err)
	}
	return restaurants, nil
}

func (s *Store) ListMenu(ctx context.Context, restaurantID string) ([]catalog.MenuItem, error) {
	query := `
		SELECT id, restaurant_id, name, category, price_minor, available, created_at
		FROM menu_items
		WHERE restaurant_id = $1
		ORDER BY category, name
	`

	rows, err := s.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("query menu items: %w", err)
	}
	defer rows.Close()

	var items []catalog.MenuItem
	for rows.Next() {
		var item catalog.MenuItem
		if err := rows.Scan(
			&item.ID,
			&item.RestaurantID,
			&item.Name,
			&item.Category,
			&item.PriceMinor,
			&item.Available,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate menu items: %w", err)
	}
	return items, nil
}

func (s *Store) CreateRestaurant(ctx context.Context, r catalog.Restaurant) error {
	query := `
		INSERT INTO restaurants (id, owner_id, name, city, country, cuisines, delivery_fee_minor, available, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.pool.Exec(ctx, query,
		r.ID, r.OwnerID, r.Name, r.City, r.Country, r.Cuisines,
		r.DeliveryFeeMinor, r.Available, r.Rating, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}

func (s *Store) UpdateRestaurant(ctx context.Context, r catalog.Restaurant) error {
	query := `
		UPDATE restaurants
		SET name = $2, city = $3, country = $4, cuisines = $5, delivery_fee_minor = $6, available = $7
		WHERE id = $1
	`

	result, err := s.pool.Exec(ctx, query,
		r.ID, r.Name, r.City, r.Country, r.Cuisines, r.DeliveryFeeMinor, r.Available,
	)
	if err != nil {
		return fmt.Errorf("update restaurant: %w", err)
	}
	if result.RowsAffected() == 0 {
		return catalog.ErrRestaurantNotFound
	}
	return nil
}

func (s *Store) UpsertMenuItem(ctx context.Context, item catalog.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, restaurant_id, name, category, price_minor, available, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    category = EXCLUDED.category,
		    price_minor = EXCLUDED.price_minor,
		    available = EXCLUDED.available
	`

	_, err := s.pool.Exec(ctx, query,
		item.ID, item.RestaurantID, item.Name, item.Category, item.PriceMinor, item.Available,
	)
	if err != nil {
		return fmt.Errorf("upsert menu item: %w", err)
	}
	return nil
}

func (s *Store) DeleteMenuItem(ctx context.Context, id string) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return catalog.ErrMenuItemNotFound
	}
	return nil
}

func (s *Store) DisableMenuItem(ctx context.Context, id string) error {
	result, err := s.pool.Exec(ctx, `UPDATE menu_items SET available = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("disable menu item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return catalog.ErrMenuItemNotFound
	}
	return nil
}

func (s *Store) MenuItemReferenced(ctx context.Context, id string) (bool, error) {
	var referenced bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM order_items WHERE menu_item_id = $1)`, id,
	).Scan(&referenced)
	if err != nil {
		return false, fmt.Errorf("check menu item references: %w", err)
	}
	return referenced, nil
}

func (s *Store) SetRating(ctx context.Context, restaurantID string, rating float64) error {
	result, err := s.pool.Exec(ctx,
		`UPDATE restaurants SET rating = $2 WHERE id = $1`, restaurantID, rating,
	)
	if err != nil {
		return fmt.Errorf("set restaurant rating: %w", err)
	}
	if result.RowsAffected() == 0 {
		return catalog.ErrRestaurantNotFound
	}
	return nil
}
