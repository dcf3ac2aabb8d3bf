package initializer

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	infra_eventbus "github.com/vagnerwentz/bankapi/infra/eventbus"
	"github.com/vagnerwentz/bankapi/pkg/config"
	"github.com/vagnerwentz/bankapi/pkg/lock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInitCoordination_DefaultsToMemory(t *testing.T) {
	rt := &Runtime{Deps: &config.Deps{}}
	err := initCoordination(context.Background(), &config.App{Redis: &config.Redis{}}, discardLogger(), rt)
	require.NoError(t, err)
	assert.IsType(t, &lock.Memory{}, rt.Deps.Locker)
	assert.IsType(t, &infra_eventbus.MemoryEventBus{}, rt.Deps.EventBus)
	assert.Empty(t, rt.Workers)
	assert.NoError(t, rt.Close())
}

func TestInitCoordination_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.App{
		Redis:    &config.Redis{URL: "redis://" + mr.Addr(), KeyPrefix: "test:"},
		Lock:     &config.Lock{Expiry: time.Second, Tries: 3, RetryDelay: time.Millisecond},
		EventBus: &config.EventBus{Stream: "test:events", Group: "test"},
	}
	rt := &Runtime{Deps: &config.Deps{}}

	err := initCoordination(context.Background(), cfg, discardLogger(), rt)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	assert.IsType(t, &lock.Redis{}, rt.Deps.Locker)
	assert.IsType(t, &infra_eventbus.RedisEventBus{}, rt.Deps.EventBus)
	assert.Len(t, rt.Workers, 1)
	assert.True(t, mr.Exists("test:events"))

	err = rt.Deps.Locker.WithLock(context.Background(), []string{lock.AccountKey(1)}, func(ctx context.Context) error {
		assert.True(t, mr.Exists("test:account:1"))
		return nil
	})
	assert.NoError(t, err)
}

func TestInitCoordination_UnreachableRedis(t *testing.T) {
	cfg := &config.App{Redis: &config.Redis{URL: "redis://127.0.0.1:1"}}
	err := initCoordination(context.Background(), cfg, discardLogger(), &Runtime{Deps: &config.Deps{}})
	assert.Error(t, err)
}

func TestInitCoordination_InvalidURL(t *testing.T) {
	cfg := &config.App{Redis: &config.Redis{URL: "://nope"}}
	err := initCoordination(context.Background(), cfg, discardLogger(), &Runtime{Deps: &config.Deps{}})
	assert.Error(t, err)
}

func TestInitializeDependencies_RequiresDatabaseURL(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	_, err := InitializeDependencies(context.Background(), &config.App{
		Log: &config.Log{Format: "text", Level: 8},
		DB:  &config.DB{},
	})
	assert.Error(t, err)
}

func TestNewLogger_JSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Log{Format: "json", Prefix: "[test]"})
	logger.Info("hello", "number", 123456)

	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"number":123456`)
	assert.Same(t, logger, slog.Default())
}
