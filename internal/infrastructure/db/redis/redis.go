// Package redis provides the advisory clock-in guard and its connection
// helper. Redis holds no durable timeclock state; losing it degrades the
// double clock-in protection, nothing else.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 5 * time.Second

// Config holds the Redis connection settings for the clock guard.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect builds the client and pings it once. The startup ping is strict
// even though the guard is advisory at runtime: a misconfigured address
// should surface when the server boots, not as a stream of guard warnings.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
