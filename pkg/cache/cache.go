// Package cache stores rendered panel artifacts keyed by a hash of the panel
// props and the render options.
//
// Three backends implement [Cache]:
//   - [NullCache]: never stores anything (--no-cache, tests)
//   - [FileCache]: one JSON entry per key under a directory, used by the CLI
//   - [RedisCache]: shared cache for multi-instance HTTP servers
//
// Keys are produced by a [Keyer]. [ScopedKeyer] prefixes keys, which the
// server uses to namespace entries by build version so a deploy never serves
// artifacts rendered by older code.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long rendered artifacts are kept.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss
	// (ok == false), not an error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

var (
	_ Clearer = (*FileCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
