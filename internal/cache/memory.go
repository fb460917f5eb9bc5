package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process Cache with per-entry TTL. The clock is
// injectable so tests can control expiry deterministically.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// MemoryOption configures a Memory cache.
type MemoryOption func(*Memory)

// WithClock overrides the cache's notion of now.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		m.now = now
	}
}

// NewMemory creates a new in-memory cache.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetOrCompute returns the cached value for key, computing and storing it
// on a miss or after expiry.
func (m *Memory) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) ([]byte, error) {
	m.mu.Lock()
	if e, ok := m.entries[key]; ok && m.now().Before(e.expiresAt) {
		m.mu.Unlock()
		return e.value, nil
	}
	m.mu.Unlock()

	val, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.entries[key] = entry{value: val, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
	return val, nil
}

// Delete removes a single key.
func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

// Clear removes all entries immediately.
func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]entry)
	return nil
}
