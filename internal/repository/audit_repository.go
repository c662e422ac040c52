package repository

import (
	"context"

	"github.com/campusly/college-management/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRepository persists audit entries drained from the queue.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// Insert stores one entry and fills in its generated id.
func (r *AuditRepository) Insert(ctx context.Context, e *model.AuditEntry) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO audit_log (actor, action, entity, entity_key, occurred_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		e.Actor, e.Action, e.Entity, e.EntityKey, e.OccurredAt,
	).Scan(&e.ID)
}

// ListByEntity returns the history of one record, oldest first.
func (r *AuditRepository) ListByEntity(ctx context.Context, entity model.AuditEntity, key string) ([]model.AuditEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, actor, action, entity, entity_key, occurred_at
		 FROM audit_log WHERE entity = $1 AND entity_key = $2 ORDER BY id`, entity, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]model.AuditEntry, 0)
	for rows.Next() {
		var e model.AuditEntry
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.Entity, &e.EntityKey, &e.OccurredAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
