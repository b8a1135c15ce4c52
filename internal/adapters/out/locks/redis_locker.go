package locks

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tailorshop/internal/core/domain/model/kernel"
	"tailorshop/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix     = "tailorshop:order-lock:"
	defaultRetryPeriod = 50 * time.Millisecond
)

// releaseScript deletes the key only if it still carries our token, so a lock
// that expired and was taken by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker holds order locks as Redis keys with a TTL. The TTL bounds how
// long a crashed holder can block an order.
type RedisLocker struct {
	client      redis.UniversalClient
	ttl         time.Duration
	retryPeriod time.Duration
	logger      *slog.Logger
}

func NewRedisLocker(client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *RedisLocker {
	return &RedisLocker{
		client:      client,
		ttl:         ttl,
		retryPeriod: defaultRetryPeriod,
		logger:      logger.With("component", "RedisLocker"),
	}
}

// NewRedisClient parses a redis:// URL and checks the server answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// Lock implements ports.OrderLocker by polling SET NX until it succeeds or
// ctx is done.
func (l *RedisLocker) Lock(ctx context.Context, id kernel.UUID) (func(), error) {
	key := redisKeyPrefix + id.String()
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(l.retryPeriod)
	defer ticker.Stop()

	for {
		ok, setErr := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if setErr != nil && !errors.Is(setErr, redis.Nil) {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: order %s: %w", ports.ErrLockNotAcquired, id, ctx.Err())
			}
			return nil, fmt.Errorf("failed to acquire lock for order %s: %w", id, setErr)
		}
		if ok {
			return l.unlockFunc(key, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: order %s: %w", ports.ErrLockNotAcquired, id, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) unlockFunc(key, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			// The caller's context may already be cancelled; release anyway.
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
				l.logger.Warn("failed to release order lock", "key", key, "error", err)
			}
		})
	}
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate lock token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
