// Package cache defines the storage interface used for resolved package
// metadata and provides several backends: in-memory (default), file-based
// for CLI usage, and Redis/MongoDB for deployments that share a cache
// across processes.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores opaque byte values under string keys.
//
// Implementations must be safe for concurrent use. Clear must tolerate
// racing in-flight Get/Set calls: a reader may observe a stale-but-valid
// entry or a miss, never a partially-cleared structure.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a single entry. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear drops every entry held by this cache.
	Clear(ctx context.Context) error

	// Close releases backend resources (connections, file handles).
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
