// Package postgres owns the pgx connection pool used by the screening
// request store.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"sichrplace/internal/platform/config"
)

// Pool wraps a pgx pool with health checking. Returns nil when Postgres is
// not configured so development can run on in-memory stores.
type Pool struct {
	*pgxpool.Pool
}

// New connects a pgx pool from configuration.
func New(ctx context.Context, cfg config.Postgres) (*Pool, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	pool, err := pgxpool.New(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return &Pool{Pool: pool}, nil
}

// Health checks if the database connection is healthy.
func (p *Pool) Health(ctx context.Context) error {
	return p.Ping(ctx)
}
