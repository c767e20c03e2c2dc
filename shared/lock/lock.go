package lock

import (
	"context"
	"errors"
	"fmt"
	"mariachi/config"
	"mariachi/infras/otel"
	"mariachi/shared/constant"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	keyPrefix    = "lock"
	pollInterval = 50 * time.Millisecond
)

var ErrNotAcquired = errors.New("lock not acquired")

// releaseScript deletes the key only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker serialises the check-availability-then-write sequence per key.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// DateKey is the lock key guarding one calendar date.
func DateKey(date string) string {
	return "date:" + date
}

// EntityKey guards a single record, e.g. the balance of one reservation.
func EntityKey(entity, id string) string {
	return entity + ":" + id
}

type redisLocker struct {
	client *redis.Client
	otel   otel.Otel
	ttl    time.Duration
	wait   time.Duration
}

func NewRedisLocker(client *redis.Client, cfg *config.Config, otl otel.Otel) Locker {
	return &redisLocker{
		client: client,
		otel:   otl,
		ttl:    time.Duration(cfg.App.Lock.TTLMillis) * time.Millisecond,
		wait:   time.Duration(cfg.App.Lock.WaitMillis) * time.Millisecond,
	}
}

func (l *redisLocker) Acquire(ctx context.Context, key string) (release func(), err error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelLockScopeName, constant.OtelLockScopeName+".Acquire")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	lockKey := keyPrefix + ":" + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	scope.SetAttribute("lock.key", lockKey)

	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, l.ttl).Result()
		if err != nil {
			log.Error().Err(err).Str("key", lockKey).Msg("failed to acquire lock")

			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}

		if ok {
			break
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrNotAcquired, key)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to acquire lock: %w", ctx.Err())
		case <-time.After(pollInterval):
		}
	}

	return func() {
		c := context.WithoutCancel(ctx)

		if err := releaseScript.Run(c, l.client, []string{lockKey}, token).Err(); err != nil {
			log.Error().Err(err).Str("key", lockKey).Msg("failed to release lock")
		}
	}, nil
}

type localLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

// NewLocal returns an in-process Locker.
func NewLocal() Locker {
	return &localLocker{
		locks: map[string]chan struct{}{},
	}
}

func (l *localLocker) Acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	ch, ok := l.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[key] = ch
	}
	l.mu.Unlock()

	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("failed to acquire lock: %w", ctx.Err())
	}

	var once sync.Once

	return func() {
		once.Do(func() { <-ch })
	}, nil
}
