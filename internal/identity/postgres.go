package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dinehub/dinehub/internal/auth"
)

// PostgresProvider resolves API tokens against the users table.
type PostgresProvider struct {
	pool *pgxpool.Pool
}

func NewPostgresProvider(pool *pgxpool.Pool) *PostgresProvider {
	return &PostgresProvider{pool: pool}
}

func (p *PostgresProvider) Resolve(ctx context.Context, token string) (auth.Identity, error) {
	query := `SELECT id, role FROM users WHERE api_token = $1`

	var id auth.Identity
	var role string
	err := p.pool.QueryRow(ctx, query, token).Scan(&id.UserID, &role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Identity{}, ErrUnauthenticated
		}
		return auth.Identity{}, fmt.Errorf("resolve token: %w", err)
	}
	id.Role = auth.Role(role)
	return id, nil
}
