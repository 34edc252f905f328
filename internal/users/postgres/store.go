package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dinehub/dinehub/internal/users"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) GetByID(ctx context.Context, id string) (*users.User, error) {
	query := `
		SELECT id, first_name, last_name, email, address_line1, address_line2, city, country, created_at
		FROM users
		WHERE id = $1
	`

	var u users.User
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.Address.Line1,
		&u.Address.Line2,
		&u.Address.City,
		&u.Address.Country,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}

func (s *Store) UpdateAddress(ctx context.Context, id string, addr users.Address) error {
	query := `
		UPDATE users
		SET address_line1 = $2, address_line2 = $3, city = $4, country = $5
		WHERE id = $1
	`

	result, err := s.pool.Exec(ctx, query, id, addr.Line1, addr.Line2, addr.City, addr.Country)
	if err != nil {
		return fmt.Errorf("update user address: %w", err)
	}
	if result.RowsAffected() == 0 {
		return users.ErrNotFound
	}
	return nil
}
