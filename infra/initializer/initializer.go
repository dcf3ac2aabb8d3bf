package initializer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vagnerwentz/bankapi/infra"
	infra_eventbus "github.com/vagnerwentz/bankapi/infra/eventbus"
	infra_repository "github.com/vagnerwentz/bankapi/infra/repository"
	"github.com/vagnerwentz/bankapi/pkg/config"
	"github.com/vagnerwentz/bankapi/pkg/domain/events"
	"github.com/vagnerwentz/bankapi/pkg/lock"
)

// Worker is a long-running task that stops when its context is cancelled.
type Worker func(ctx context.Context) error

// Runtime holds the live dependencies plus what the process must run and
// release alongside them.
type Runtime struct {
	Deps    *config.Deps
	Workers []Worker
	closers []func() error
}

// Close releases every connection opened by InitializeDependencies.
func (r *Runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// InitializeDependencies initializes all the application dependencies.
func InitializeDependencies(ctx context.Context, cfg *config.App) (*Runtime, error) {
	logger := SetupLogger(cfg.Log)
	rt := &Runtime{Deps: &config.Deps{Logger: logger, Config: cfg}}

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, sqlDB.Close)

	if cfg.DB.AutoMigrate {
		if err := infra.RunMigrations(db, logger); err != nil {
			_ = rt.Close()
			return nil, err
		}
	}
	rt.Deps.Uow = infra_repository.NewUoW(db)

	if err := initCoordination(ctx, cfg, logger, rt); err != nil {
		_ = rt.Close()
		return nil, err
	}
	return rt, nil
}

// initCoordination picks the locker and event bus: Redis-backed when
// REDIS_URL is set, in-process otherwise. A configured but unreachable
// Redis is an error, since a process-local lock cannot exclude other
// instances.
func initCoordination(ctx context.Context, cfg *config.App, logger *slog.Logger, rt *Runtime) error {
	if cfg.Redis == nil || cfg.Redis.URL == "" {
		logger.Info("Redis not configured, using in-memory locker and event bus")
		rt.Deps.Locker = lock.NewMemory()
		rt.Deps.EventBus = infra_eventbus.NewWithMemory(logger)
		return nil
	}

	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("redis: invalid URL: %w", err)
	}
	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("redis: connection failed: %w", err)
	}
	rt.closers = append(rt.closers, client.Close)

	lockOpts := lock.DefaultOptions()
	if cfg.Lock != nil {
		lockOpts = lock.Options{
			Expiry:     cfg.Lock.Expiry,
			Tries:      cfg.Lock.Tries,
			RetryDelay: cfg.Lock.RetryDelay,
		}
	}
	rt.Deps.Locker = lock.NewRedis(client, cfg.Redis.KeyPrefix, lockOpts, logger)

	stream, group := "bankapi:events", "bankapi"
	if cfg.EventBus != nil {
		stream, group = cfg.EventBus.Stream, cfg.EventBus.Group
	}
	bus, err := infra_eventbus.NewWithRedis(ctx, client, stream, group, events.Factories(), logger)
	if err != nil {
		return err
	}
	rt.Deps.EventBus = bus
	rt.Workers = append(rt.Workers, bus.Run)
	logger.Info("Using Redis locker and event bus", "stream", stream, "group", group)
	return nil
}
