package eventbus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vagnerwentz/bankapi/pkg/domain/events"
)

type testEvent struct {
	Message string `json:"message"`
}

func (e *testEvent) Type() string { return "test.event" }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMemoryEventBus_DispatchesByType(t *testing.T) {
	bus := NewWithMemory(discardLogger())
	var got []string
	bus.Register("test.event", func(ctx context.Context, e events.Event) error {
		got = append(got, e.(*testEvent).Message)
		return nil
	})
	bus.Register("other.event", func(ctx context.Context, e events.Event) error {
		t.Fatal("unexpected handler call")
		return nil
	})

	require.NoError(t, bus.Emit(context.Background(), &testEvent{Message: "hello"}))
	assert.Equal(t, []string{"hello"}, got)
	assert.Len(t, bus.Published(), 1)
}

func TestMemoryEventBus_HandlerFailureDoesNotFailEmit(t *testing.T) {
	bus := NewWithMemory(discardLogger())
	calls := 0
	bus.Register("test.event", func(ctx context.Context, e events.Event) error {
		calls++
		return errors.New("boom")
	})
	bus.Register("test.event", func(ctx context.Context, e events.Event) error {
		calls++
		panic("kaboom")
	})
	bus.Register("test.event", func(ctx context.Context, e events.Event) error {
		calls++
		return nil
	})

	assert.NoError(t, bus.Emit(context.Background(), &testEvent{}))
	assert.Equal(t, 3, calls)
}
