package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vagnerwentz/bankapi/pkg/domain/events"
	"github.com/vagnerwentz/bankapi/pkg/eventbus"
)

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// RedisEventBus publishes events to a Redis stream and consumes them through
// a consumer group, so handlers run on whichever instance reads the message.
type RedisEventBus struct {
	client    redis.UniversalClient
	stream    string
	group     string
	consumer  string
	block     time.Duration
	factories map[string]func() events.Event
	handlers  map[string][]eventbus.HandlerFunc
	mu        sync.RWMutex
	logger    *slog.Logger
}

// NewWithRedis creates a Redis Streams event bus and makes sure the stream
// and its consumer group exist.
func NewWithRedis(
	ctx context.Context,
	client redis.UniversalClient,
	stream, group string,
	factories map[string]func() events.Event,
	logger *slog.Logger,
) (*RedisEventBus, error) {
	if stream == "" || group == "" {
		return nil, fmt.Errorf("redis event bus: stream and group are required")
	}
	err := client.XGroupCreateMkStream(ctx, stream, group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return nil, fmt.Errorf("redis event bus: create group: %w", err)
	}
	host, _ := os.Hostname()
	return &RedisEventBus{
		client:    client,
		stream:    stream,
		group:     group,
		consumer:  fmt.Sprintf("%s-%d", host, os.Getpid()),
		block:     time.Second,
		factories: factories,
		handlers:  make(map[string][]eventbus.HandlerFunc),
		logger:    logger.With("component", "redis-event-bus", "stream", stream),
	}, nil
}

// Emit publishes an event to the Redis stream.
func (b *RedisEventBus) Emit(ctx context.Context, event events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("redis event bus: marshal failed: %w", err)
	}
	envBytes, err := json.Marshal(envelope{Type: event.Type(), Payload: data})
	if err != nil {
		return fmt.Errorf("redis event bus: envelope marshal failed: %w", err)
	}
	if err := b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: b.stream,
		Values: map[string]any{"event": string(envBytes)},
	}).Err(); err != nil {
		b.logger.Error("failed to emit event", "error", err, "type", event.Type())
		return fmt.Errorf("redis event bus: emit failed: %w", err)
	}
	b.logger.Debug("event emitted", "type", event.Type())
	return nil
}

// Register adds a handler for eventType. Handlers run from Run.
func (b *RedisEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.logger.Info("handler registered", "event_type", eventType, "consumer", b.consumer)
}

// Run consumes the stream until ctx is cancelled.
func (b *RedisEventBus) Run(ctx context.Context) error {
	for {
		res, err := b.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    b.group,
			Consumer: b.consumer,
			Streams:  []string{b.stream, ">"},
			Count:    10,
			Block:    b.block,
		}).Result()
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				b.logger.Error("error reading from stream", "error", err)
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(time.Second):
				}
			}
			continue
		}
		for _, stream := range res {
			for _, msg := range stream.Messages {
				b.handle(ctx, msg)
			}
		}
	}
}

func (b *RedisEventBus) handle(ctx context.Context, msg redis.XMessage) {
	defer func() {
		if err := b.client.XAck(ctx, b.stream, b.group, msg.ID).Err(); err != nil {
			b.logger.Error("failed to acknowledge message", "error", err, "msg_id", msg.ID)
		}
	}()

	raw, ok := msg.Values["event"].(string)
	if !ok {
		b.pushToDLQ(ctx, msg.Values)
		return
	}
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		b.logger.Error("failed to unmarshal envelope", "error", err)
		b.pushToDLQ(ctx, msg.Values)
		return
	}
	constructor, ok := b.factories[env.Type]
	if !ok {
		b.logger.Error("unknown event type", "event_type", env.Type)
		b.pushToDLQ(ctx, msg.Values)
		return
	}
	evt := constructor()
	if err := json.Unmarshal(env.Payload, evt); err != nil {
		b.logger.Error("failed to unmarshal payload", "error", err, "event_type", env.Type)
		b.pushToDLQ(ctx, msg.Values)
		return
	}

	b.mu.RLock()
	handlers := append([]eventbus.HandlerFunc(nil), b.handlers[env.Type]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("handler panic recovered", "panic", r, "event_type", env.Type)
					b.pushToDLQ(ctx, msg.Values)
				}
			}()
			if err := handler(ctx, evt); err != nil {
				b.logger.Error("handler error", "error", err, "event_type", env.Type)
				b.pushToDLQ(ctx, msg.Values)
			}
		}()
	}
}

// DLQStream is the stream that receives messages no handler could process.
func (b *RedisEventBus) DLQStream() string {
	return b.stream + "-DLQ"
}

func (b *RedisEventBus) pushToDLQ(ctx context.Context, values map[string]any) {
	if err := b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: b.DLQStream(),
		Values: values,
	}).Err(); err != nil {
		b.logger.Error("failed to push to DLQ", "error", err, "stream", b.DLQStream())
		return
	}
	b.logger.Warn("event pushed to DLQ", "stream", b.DLQStream())
}

var _ eventbus.Bus = (*RedisEventBus)(nil)
