package config

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds and pings a redis client from an address or a
// redis:// URL. Returns (nil, nil) when addr is empty: caching is
// optional and the server degrades to uncached generation without it.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}

	var client *redis.Client
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opt, err := redis.ParseURL(addr)
		if err != nil {
			return nil, err
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: addr})
	}

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, err
	}
	return client, nil
}
