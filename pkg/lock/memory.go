package lock

import (
	"context"
	"fmt"
	"sync"
)

// Memory is a process-local Locker. Each key maps to a one-slot semaphore
// that is dropped once no caller holds or waits for it.
type Memory struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

// NewMemory returns an empty Memory locker.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string]*slot)}
}

// WithLock implements Locker.
func (m *Memory) WithLock(ctx context.Context, keys []string, fn func(ctx context.Context) error) error {
	keys = normalize(keys)
	held := make([]string, 0, len(keys))
	defer func() {
		for i := len(held) - 1; i >= 0; i-- {
			m.release(held[i])
		}
	}()
	for _, k := range keys {
		if err := m.acquire(ctx, k); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrNotAcquired, k, err)
		}
		held = append(held, k)
	}
	return fn(ctx)
}

func (m *Memory) acquire(ctx context.Context, key string) error {
	m.mu.Lock()
	s, ok := m.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		m.slots[key] = s
	}
	s.refs++
	m.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		m.unref(key, s)
		return ctx.Err()
	}
}

func (m *Memory) release(key string) {
	m.mu.Lock()
	s := m.slots[key]
	m.mu.Unlock()
	<-s.ch
	m.unref(key, s)
}

func (m *Memory) unref(key string, s *slot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(m.slots, key)
	}
}

// size reports how many keys are tracked.
func (m *Memory) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.slots)
}
