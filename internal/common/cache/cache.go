// Package cache provides the byte caches used in front of the store.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values for a bounded time.
// Get reports found=false on a miss; err is reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
