// Package cache provides response caching for upstream API calls.
//
// Fetching a dependency parse costs a network round trip and an API
// credit, so depviz caches the raw annotated documents it receives.
// Three backends are available:
//
//   - [FileCache]: sha-256 sharded files on disk, for CLI usage
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: no-op backend when caching is disabled
//
// All backends store opaque byte slices under string keys with an
// optional TTL and are safe for sequential use; FileCache additionally
// tolerates concurrent processes sharing one directory.
package cache

import (
	"context"
	"time"
)

// Cache is the backend interface shared by all implementations.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and fresh; expired or missing entries are a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means the entry
	// never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
