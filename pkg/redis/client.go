// Package redis wraps the go-redis client used as the shared rate limiter store.
package redis

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/Yusufakmalov/MY-MEAT/pkg/config"
)

const pingTimeout = 3 * time.Second

// Client wraps the go-redis client with Prometheus instrumentation.
type Client struct {
	*redis.Client
}

// New creates a Redis client for cfg and verifies the connection with Ping.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
	rdb.AddHook(metricsHook{})

	client := &Client{Client: rdb}
	if err := client.HealthCheck(ctx); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// HealthCheck pings the server.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	return c.Ping(ctx).Err()
}
