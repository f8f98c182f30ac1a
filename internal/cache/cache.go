package cache

import (
	"context"
	"time"
)

// Cache is the small JSON cache the stats path uses. A nil-safe no-op
// implementation exists for deployments without Redis.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// StatsKey is the cache key for an owner's dashboard stats.
func StatsKey(ownerID string) string { return "stats:" + ownerID }

// Noop satisfies Cache without storing anything.
type Noop struct{}

func (Noop) GetJSON(context.Context, string, any) (bool, error)       { return false, nil }
func (Noop) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Del(context.Context, ...string) error                      { return nil }
