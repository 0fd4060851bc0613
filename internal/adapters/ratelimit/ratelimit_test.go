package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestMemory_FixedWindow(t *testing.T) {
	m := NewMemory(2)
	now := time.Date(2024, 1, 1, 10, 0, 5, 0, time.UTC)
	m.now = func() time.Time { return now }

	for i, want := range []bool{true, true, false} {
		ok, err := m.Allow(context.Background(), "visitor-1")
		if err != nil || ok != want {
			t.Fatalf("attempt %d: ok=%v err=%v, want %v", i+1, ok, err, want)
		}
	}
	if ok, _ := m.Allow(context.Background(), "visitor-2"); !ok {
		t.Fatalf("keys must be independent")
	}

	now = now.Add(time.Minute)
	if ok, _ := m.Allow(context.Background(), "visitor-1"); !ok {
		t.Fatalf("new window should reset the count")
	}
	if n := m.Sweep(); n != 1 {
		t.Fatalf("expected 1 stale counter swept, got %d", n)
	}
}

func TestMemory_ZeroLimitDisables(t *testing.T) {
	m := NewMemory(0)
	for i := 0; i < 100; i++ {
		if ok, _ := m.Allow(context.Background(), "k"); !ok {
			t.Fatalf("limit 0 must not block")
		}
	}
}

// Requiere un Redis real: REDIS_URL=redis://localhost:6379/0
func TestRedis_FixedWindow(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	r, err := NewRedis(url, 1)
	if err != nil {
		t.Fatalf("new redis: %v", err)
	}
	defer r.Close()
	if err := r.Ping(context.Background()); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	r.prefix = "ratelimit-test:" + time.Now().Format("150405.000000") + ":"

	if ok, err := r.Allow(context.Background(), "k"); err != nil || !ok {
		t.Fatalf("first attempt: ok=%v err=%v", ok, err)
	}
	if ok, err := r.Allow(context.Background(), "k"); err != nil || ok {
		t.Fatalf("second attempt should be limited: ok=%v err=%v", ok, err)
	}
}
