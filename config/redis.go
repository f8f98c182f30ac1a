package config

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
)

// NewRedis connects to Redis. Accepts either a bare host:port or a
// redis://... URL. Redis is optional; callers decide whether a nil client
// is acceptable.
func NewRedis(ctx context.Context, cfg *Config) (*redis.Client, error) {
	addr := cfg.RedisAddr

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

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
