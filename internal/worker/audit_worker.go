package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/campusly/college-management/internal/config"
	"github.com/campusly/college-management/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// AuditStore persists decoded audit entries.
type AuditStore interface {
	Insert(ctx context.Context, e *model.AuditEntry) error
}

// AuditWorker consumes persist_audit_queue and inserts entries into audit_log.
type AuditWorker struct {
	store      AuditStore
	rdb        *redis.Client
	log        zerolog.Logger
	retryDelay time.Duration
}

// NewAuditWorker creates a new AuditWorker.
func NewAuditWorker(store AuditStore, rdb *redis.Client, log zerolog.Logger) *AuditWorker {
	return &AuditWorker{
		store:      store,
		rdb:        rdb,
		log:        log.With().Str("component", "audit_worker").Logger(),
		retryDelay: 5 * time.Second,
	}
}

// errMalformed marks payloads that can never be persisted and must not be retried.
var errMalformed = errors.New("malformed audit payload")

// Start begins the infinite worker loop. Call in a goroutine.
func (w *AuditWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *AuditWorker) processNext(ctx context.Context) {
	result, err := w.rdb.BLPop(ctx, time.Second, config.WorkerKey.PersistAuditQueue).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}
	if len(result) < 2 {
		return
	}

	if err := w.persist(ctx, result[1]); err != nil {
		if errors.Is(err, errMalformed) {
			w.log.Error().Err(err).Str("payload", result[1]).Msg("Dropping audit entry")
			return
		}
		w.log.Error().Err(err).Msg("Persist error, retrying")
		w.rdb.RPush(context.WithoutCancel(ctx), config.WorkerKey.PersistAuditQueue, result[1])

		select {
		case <-ctx.Done():
		case <-time.After(w.retryDelay):
		}
	}
}

// persist decodes one queued payload and stores it.
func (w *AuditWorker) persist(ctx context.Context, raw string) error {
	var entry model.AuditEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	if entry.Actor == "" || entry.EntityKey == "" {
		return fmt.Errorf("%w: missing actor or key", errMalformed)
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}
	return w.store.Insert(ctx, &entry)
}

// drain processes all remaining items in the queue before shutdown.
func (w *AuditWorker) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, config.WorkerKey.PersistAuditQueue).Result()
		if err != nil {
			break
		}

		if err := w.persist(ctx, result); err != nil {
			if errors.Is(err, errMalformed) {
				w.log.Error().Err(err).Msg("Drain dropped entry")
				continue
			}
			w.log.Error().Err(err).Msg("Drain persist error")
			w.rdb.RPush(ctx, config.WorkerKey.PersistAuditQueue, result)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}
