package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultGuardTTL = 10 * time.Second

// ClockGuard is an advisory per-number lock backed by Redis SETNX. It narrows
// the window where two devices sharing a phone number can both pass the
// "no open session" check; the TTL frees locks abandoned by crashed requests.
// Key format: clockin:<number>
type ClockGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClockGuard creates a ClockGuard wrapping the given Redis client.
func NewClockGuard(client *redis.Client, ttl time.Duration) *ClockGuard {
	if ttl <= 0 {
		ttl = defaultGuardTTL
	}
	return &ClockGuard{client: client, ttl: ttl}
}

// Acquire takes the lock for the number. ok=false means another clock-in for
// the same number is in flight.
func (g *ClockGuard) Acquire(ctx context.Context, number string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(number), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("clock guard acquire: %w", err)
	}
	return ok, nil
}

// Release frees the lock early; the TTL is the backstop if this never runs.
func (g *ClockGuard) Release(ctx context.Context, number string) {
	_ = g.client.Del(ctx, g.key(number)).Err()
}

func (g *ClockGuard) key(number string) string {
	return "clockin:" + number
}
