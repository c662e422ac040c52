package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Pinger is satisfied by anything that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck reports whether PostgreSQL and Redis are reachable.
type HealthCheck struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
}

// NewHealthCheck creates a HealthCheck over the shared pool and client.
func NewHealthCheck(pool *pgxpool.Pool, rdb *redis.Client) *HealthCheck {
	return &HealthCheck{pool: pool, rdb: rdb}
}

// Ping fails with the first unreachable dependency.
func (h *HealthCheck) Ping(ctx context.Context) error {
	if err := h.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	if err := h.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	return nil
}
