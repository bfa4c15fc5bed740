// Package cache stores computed layouts and rendered artifacts keyed by the
// content hash of the topology config and the layout options that produced
// them. Backends: file (CLI), redis (server deployments), null (disabled).
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by lookups that miss where a miss is an error.
var ErrNotFound = errors.New("not found")

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The bool reports a hit; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Hash computes the SHA-256 content hash of data as a 64-char hex string.
// Topology configs are hashed this way to key layout results.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a collision-safe key from a prefix and arbitrary parts.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// LayoutKey keys a computed layout by the config's content hash and the
// geometry settings used, so changed constants never serve stale geometry.
func LayoutKey(configHash string, opts any) string {
	return hashKey("layout", configHash, opts)
}

// ArtifactKey keys a rendered artifact by layout identity and format.
func ArtifactKey(configHash, format string, opts any) string {
	return hashKey("artifact", configHash, format, opts)
}

// NullCache never stores anything; it disables caching without branching at
// call sites.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return &NullCache{} }

// Get always misses.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error { return nil }

// Close does nothing.
func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
