// Package cache stores rendered artifacts and graph snapshots as opaque
// byte slices.
//
// # Backends
//
//   - [FileCache]: entries as JSON files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for servers
//   - [NullCache]: stores nothing, for tests or --no-cache
//
// Wrap any backend with [Instrumented] to report hits, misses and writes to
// the registered observability hooks.
//
// # Keys
//
// A [Keyer] derives keys from content hashes, so a changed graph never
// reads a stale artifact:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.RenderKey(cache.Hash(doc), cache.RenderKeyOpts{Format: "svg"})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    return data
//	}
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/graphkit/pkg/observability"
)

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the entry stored under key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// instrumented reports cache traffic to observability hooks.
type instrumented struct {
	Cache
	keyType string
}

// Instrumented wraps c so every Get and Set is reported to
// [observability.CacheHooks] under keyType.
func Instrumented(c Cache, keyType string) Cache {
	return &instrumented{Cache: c, keyType: keyType}
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, c.keyType)
		} else {
			observability.Cache().OnCacheMiss(ctx, c.keyType)
		}
	}
	return data, hit, err
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, c.keyType, len(data))
	return nil
}
