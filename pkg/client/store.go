package client

import (
	"context"
	"time"
)

// Store abstracts the client-local key-value state behind the cache
// layer. Implementations: in-memory (one browser-tab-like session) or
// Redis (shared cache in server-side deployments). A ttl of zero means
// the entry lives as long as the store itself.
type Store interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
