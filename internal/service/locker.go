package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Locker serializes work per key. The returned release func must be called
// exactly once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// releaseScript deletes the key only if it still holds our token, so an
// expired lock taken over by another holder is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

const lockRetryInterval = 25 * time.Millisecond

// RedisLocker is a lock shared by every server instance using the same Redis.
type RedisLocker struct {
	rdb  *redis.Client
	ttl  time.Duration
	wait time.Duration
	log  zerolog.Logger
}

// NewRedisLocker creates a RedisLocker. ttl bounds how long a crashed holder
// can block the key; wait bounds how long Acquire polls.
func NewRedisLocker(rdb *redis.Client, ttl, wait time.Duration, log zerolog.Logger) *RedisLocker {
	return &RedisLocker{
		rdb:  rdb,
		ttl:  ttl,
		wait: wait,
		log:  log.With().Str("component", "redis_locker").Logger(),
	}
}

// Acquire polls SET NX until the key is free, the wait elapses
// (ErrDepartmentBusy) or ctx is done.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.New().String()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, ErrDepartmentBusy
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}

	release := func() {
		// The request context may already be cancelled; the key still has to go.
		relCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if err := releaseScript.Run(relCtx, l.rdb, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			l.log.Warn().Err(err).Str("key", key).Msg("failed to release lock")
		}
	}
	return release, nil
}

// LocalLocker serializes work per key within one process.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
	wait  time.Duration
}

// NewLocalLocker creates a LocalLocker that gives up after wait.
func NewLocalLocker(wait time.Duration) *LocalLocker {
	return &LocalLocker{locks: make(map[string]chan struct{}), wait: wait}
}

func (l *LocalLocker) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[key] = ch
	}
	return ch
}

// Acquire blocks until key is free, the wait elapses or ctx is done.
func (l *LocalLocker) Acquire(ctx context.Context, key string) (func(), error) {
	ch := l.slot(key)
	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case ch <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-ch }) }, nil
	case <-timer.C:
		return nil, ErrDepartmentBusy
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
