// Package cache provides byte-level caching for computed placements and
// rendered artifacts.
//
// # Backends
//
// All backends implement [Cache]:
//
//   - [NullCache]: stores nothing. Used when caching is disabled.
//   - [MemoryCache]: process-local map with expiry. Used by the server by default.
//   - [FileCache]: JSON entry files under a directory. Used by the CLI.
//   - [RedisCache]: shared cache for multiple server replicas.
//
// # Keys
//
// Keys are produced by a [Keyer] so that every caller hashes the same inputs
// the same way. [ScopedKeyer] adds a namespace prefix.
//
//	k := cache.NewDefaultKeyer()
//	key := k.PlacementKey(sizes, grid.Columns)
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry type.
const (
	// TTLPlacement is how long a placement stays cached. Placements are a
	// pure function of their key, so the TTL only bounds storage.
	TTLPlacement = 24 * time.Hour

	// TTLArtifact is how long a rendered artifact stays cached.
	TTLArtifact = time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. A miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
