// Package ratelimit limita envíos de formularios por clave (visitante o IP)
// con ventanas fijas de un minuto.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const Window = time.Minute

type Limiter interface {
	// Allow cuenta un intento para key y dice si sigue dentro del límite.
	Allow(ctx context.Context, key string) (bool, error)
}

// Redis comparte el contador entre réplicas: INCR + EXPIRE en un pipeline.
type Redis struct {
	client *redis.Client
	limit  int
	prefix string
	now    func() time.Time
}

func NewRedis(redisURL string, perMinute int) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Redis{
		client: redis.NewClient(opts),
		limit:  perMinute,
		prefix: "ratelimit:",
		now:    time.Now,
	}, nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	if r.limit <= 0 {
		return true, nil
	}
	bucket := fmt.Sprintf("%s%s:%d", r.prefix, key, r.now().Unix()/int64(Window.Seconds()))

	var incr *redis.IntCmd
	_, err := r.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, bucket)
		p.Expire(ctx, bucket, Window+5*time.Second)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}
	return incr.Val() <= int64(r.limit), nil
}

type counter struct {
	window int64
	count  int
}

// Memory es el limitador de una sola instancia.
type Memory struct {
	mu     sync.Mutex
	limit  int
	counts map[string]*counter
	now    func() time.Time
}

func NewMemory(perMinute int) *Memory {
	return &Memory{
		limit:  perMinute,
		counts: make(map[string]*counter),
		now:    time.Now,
	}
}

func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	if m.limit <= 0 {
		return true, nil
	}
	w := m.now().Unix() / int64(Window.Seconds())

	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.counts[key]
	if c == nil || c.window != w {
		c = &counter{window: w}
		m.counts[key] = c
	}
	c.count++
	return c.count <= m.limit, nil
}

// Sweep borra contadores de ventanas anteriores.
func (m *Memory) Sweep() int {
	w := m.now().Unix() / int64(Window.Seconds())

	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for k, c := range m.counts {
		if c.window != w {
			delete(m.counts, k)
			n++
		}
	}
	return n
}
