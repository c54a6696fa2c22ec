// Package redis is a thin client used for cache-aside reads of the
// character catalog. The service degrades to direct store reads when the
// server is unreachable.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	client *redis.Client
}

// NewClient connects to addr. An empty addr returns nil, which callers
// treat as "cache disabled".
func NewClient(addr string) *Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Client{client: client}
}

func (r *Client) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *Client) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *Client) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
