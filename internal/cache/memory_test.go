package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryGetOrCompute(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemory(WithClock(func() time.Time { return now }))
	ctx := context.Background()

	calls := 0
	compute := func(ctx context.Context) ([]byte, error) {
		calls++
		return []byte("v1"), nil
	}

	val, err := c.GetOrCompute(ctx, "k", 20*time.Second, compute)
	if err != nil {
		t.Fatalf("GetOrCompute() error: %v", err)
	}
	if string(val) != "v1" {
		t.Errorf("GetOrCompute() = %q, want %q", val, "v1")
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}

	// Within TTL the stored value wins, even if compute would differ now
	val, err = c.GetOrCompute(ctx, "k", 20*time.Second, func(ctx context.Context) ([]byte, error) {
		calls++
		return []byte("v2"), nil
	})
	if err != nil {
		t.Fatalf("GetOrCompute() error: %v", err)
	}
	if string(val) != "v1" {
		t.Errorf("GetOrCompute() within TTL = %q, want cached %q", val, "v1")
	}
	if calls != 1 {
		t.Errorf("compute called %d times within TTL, want 1", calls)
	}
}

func TestMemoryExpiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemory(WithClock(func() time.Time { return now }))
	ctx := context.Background()

	if _, err := c.GetOrCompute(ctx, "k", 20*time.Second, func(ctx context.Context) ([]byte, error) {
		return []byte("old"), nil
	}); err != nil {
		t.Fatalf("GetOrCompute() error: %v", err)
	}

	// Advance past the TTL
	now = now.Add(21 * time.Second)

	val, err := c.GetOrCompute(ctx, "k", 20*time.Second, func(ctx context.Context) ([]byte, error) {
		return []byte("fresh"), nil
	})
	if err != nil {
		t.Fatalf("GetOrCompute() error: %v", err)
	}
	if string(val) != "fresh" {
		t.Errorf("GetOrCompute() after expiry = %q, want %q", val, "fresh")
	}
}

func TestMemoryClear(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	if _, err := c.GetOrCompute(ctx, "k", time.Minute, func(ctx context.Context) ([]byte, error) {
		return []byte("old"), nil
	}); err != nil {
		t.Fatalf("GetOrCompute() error: %v", err)
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	val, err := c.GetOrCompute(ctx, "k", time.Minute, func(ctx context.Context) ([]byte, error) {
		return []byte("fresh"), nil
	})
	if err != nil {
		t.Fatalf("GetOrCompute() error: %v", err)
	}
	if string(val) != "fresh" {
		t.Errorf("GetOrCompute() after Clear() = %q, want %q", val, "fresh")
	}
}

func TestMemoryDelete(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	if _, err := c.GetOrCompute(ctx, "a", time.Minute, func(ctx context.Context) ([]byte, error) {
		return []byte("va"), nil
	}); err != nil {
		t.Fatalf("GetOrCompute() error: %v", err)
	}
	if _, err := c.GetOrCompute(ctx, "b", time.Minute, func(ctx context.Context) ([]byte, error) {
		return []byte("vb"), nil
	}); err != nil {
		t.Fatalf("GetOrCompute() error: %v", err)
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	val, err := c.GetOrCompute(ctx, "a", time.Minute, func(ctx context.Context) ([]byte, error) {
		return []byte("va2"), nil
	})
	if err != nil {
		t.Fatalf("GetOrCompute() error: %v", err)
	}
	if string(val) != "va2" {
		t.Errorf("deleted key recomputed = %q, want %q", val, "va2")
	}

	// Untouched key keeps its value
	val, err = c.GetOrCompute(ctx, "b", time.Minute, func(ctx context.Context) ([]byte, error) {
		return []byte("vb2"), nil
	})
	if err != nil {
		t.Fatalf("GetOrCompute() error: %v", err)
	}
	if string(val) != "vb" {
		t.Errorf("untouched key = %q, want cached %q", val, "vb")
	}
}
