package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/constants"
	"github.com/piresc/carpool/internal/pkg/database"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/requestcontext"
	"github.com/piresc/carpool/internal/pkg/retry"
)

var errLockHeld = errors.New("lock held")

// RedisLocker is a Locker shared across service instances. Each acquisition
// stores a random token with a TTL; release deletes the key only if the token
// still matches, so an expired lock taken over by another holder is left alone.
type RedisLocker struct {
	client *database.RedisClient
	ttl    time.Duration
	poll   *retry.Retrier
}

// NewRedisLocker creates a Redis-backed locker. A held key is polled with
// exponential backoff starting at backoff and capped at maxBackoff.
func NewRedisLocker(client *database.RedisClient, ttl, backoff, maxBackoff time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if backoff <= 0 {
		backoff = 20 * time.Millisecond
	}
	if maxBackoff < backoff {
		maxBackoff = backoff
	}
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		poll: retry.New(retry.Config{
			MaxRetries: -1,
			BaseDelay:  backoff,
			MaxDelay:   maxBackoff,
			Multiplier: 2,
			Jitter:     true,
			Retryable:  func(err error) bool { return errors.Is(err, errLockHeld) },
			Name:       "redis_lock",
		}),
	}
}

// Lock polls SET NX until it wins or ctx is done. Redis errors are not retried.
func (r *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := fmt.Sprintf(constants.KeyLock, key)
	token := uuid.NewString()

	err := r.poll.Execute(ctx, func(ctx context.Context) error {
		ok, err := r.client.SetNX(ctx, redisKey, token, r.ttl)
		if err != nil {
			return fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if !ok {
			return errLockHeld
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return func() {
		// release must not depend on the caller's ctx, which may be cancelled
		releaseCtx, cancel := context.WithTimeout(requestcontext.Detach(ctx), 5*time.Second)
		defer cancel()
		removed, err := r.client.DeleteIfEquals(releaseCtx, redisKey, token)
		if err != nil {
			logger.ErrorCtx(releaseCtx, "Failed to release lock", logger.String("key", key), logger.Err(err))
			return
		}
		if !removed {
			logger.WarnCtx(releaseCtx, "Lock expired before release", logger.String("key", key), logger.Duration("ttl", r.ttl))
		}
	}, nil
}
