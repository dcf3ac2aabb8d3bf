package lock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// Options configures the Redis locker.
type Options struct {
	// Expiry is how long a lock is held before Redis drops it.
	Expiry time.Duration
	// Tries is the number of acquisition attempts per key.
	Tries int
	// RetryDelay is the pause between attempts.
	RetryDelay time.Duration
}

// DefaultOptions returns the settings used when none are configured.
func DefaultOptions() Options {
	return Options{
		Expiry:     10 * time.Second,
		Tries:      32,
		RetryDelay: 100 * time.Millisecond,
	}
}

// Redis is a Locker shared by every instance connected to the same Redis,
// built on the redsync RedLock implementation.
type Redis struct {
	rs     *redsync.Redsync
	prefix string
	opts   Options
	logger *slog.Logger
}

// NewRedis creates a Redis locker. prefix is prepended to every key.
func NewRedis(client redis.UniversalClient, prefix string, opts Options, logger *slog.Logger) *Redis {
	return &Redis{
		rs:     redsync.New(goredis.NewPool(client)),
		prefix: prefix,
		opts:   opts,
		logger: logger.With("component", "redis-locker"),
	}
}

// WithLock implements Locker.
func (r *Redis) WithLock(ctx context.Context, keys []string, fn func(ctx context.Context) error) error {
	keys = normalize(keys)
	held := make([]*redsync.Mutex, 0, len(keys))
	defer func() {
		// Release even if ctx was cancelled while fn ran.
		unlockCtx := context.WithoutCancel(ctx)
		for i := len(held) - 1; i >= 0; i-- {
			if ok, err := held[i].UnlockContext(unlockCtx); err != nil || !ok {
				r.logger.Warn("failed to release lock", "key", held[i].Name(), "error", err)
			}
		}
	}()

	for _, k := range keys {
		m := r.rs.NewMutex(
			r.prefix+k,
			redsync.WithExpiry(r.opts.Expiry),
			redsync.WithTries(r.opts.Tries),
			redsync.WithRetryDelay(r.opts.RetryDelay),
		)
		if err := m.LockContext(ctx); err != nil {
			r.logger.Warn("failed to acquire lock", "key", r.prefix+k, "error", err)
			return fmt.Errorf("%w: %s: %w", ErrNotAcquired, k, err)
		}
		held = append(held, m)
	}
	return fn(ctx)
}
