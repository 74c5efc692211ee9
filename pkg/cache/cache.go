// Package cache stores rendered artifacts.
//
// Three backends implement [Cache]:
//
//   - [NullCache]: never stores anything (--no-cache)
//   - [FileCache]: one file per entry under the user cache directory (CLI)
//   - [RedisCache]: shared cache for the render server
//
// Keys come from a [Keyer], so the same rendering request maps to the same
// entry whichever backend holds it. Read failures are treated as misses by
// callers; a cache never makes a render fail.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the entry and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data; ttl <= 0 keeps it until deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes the entry; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// DefaultTTL is the lifetime of artifact entries.
const DefaultTTL = 7 * 24 * time.Hour

// DefaultDir returns the cache directory: $XDG_CACHE_HOME/gaugekit, or the
// platform user cache directory.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "gaugekit"), nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gaugekit"), nil
}
