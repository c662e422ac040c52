package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/campusly/college-management/internal/config"
	"github.com/campusly/college-management/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Auditor records who changed what. Implementations must not fail the
// caller's operation.
type Auditor interface {
	Record(ctx context.Context, actor model.Principal, action model.AuditAction, entity model.AuditEntity, key string)
}

// AuditService queues audit entries in Redis; the audit worker persists them.
type AuditService struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewAuditService creates a new AuditService.
func NewAuditService(rdb *redis.Client, log zerolog.Logger) *AuditService {
	return &AuditService{
		rdb: rdb,
		log: log.With().Str("component", "audit").Logger(),
	}
}

// Record pushes one entry onto the audit queue. Errors are logged only.
func (s *AuditService) Record(ctx context.Context, actor model.Principal, action model.AuditAction, entity model.AuditEntity, key string) {
	entry := model.AuditEntry{
		Actor:      actor.Username,
		Action:     action,
		Entity:     entity,
		EntityKey:  key,
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal audit entry")
		return
	}

	// The write already happened; do not lose the entry to a cancelled request.
	ctx = context.WithoutCancel(ctx)
	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistAuditQueue, payload).Err(); err != nil {
		s.log.Warn().Err(err).
			Str("entity", string(entity)).
			Str("key", key).
			Msg("failed to queue audit entry")
	}
}
