// Package kvstore abstracts the durable key-value store the repositories
// are built on. Values are opaque byte slices (JSON-encoded by callers).
// Only single-key atomicity is guaranteed; callers must not assume any
// transactional behavior across keys.
package kvstore

import (
	"context"
)

// Entry is a single key-value pair returned by a prefix scan.
type Entry struct {
	Key   string
	Value []byte
}

// Store is the durable mapping primitive.
type Store interface {
	// Get returns the value for key. The second return is false when the
	// key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set writes value under key, overwriting any existing value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// GetByPrefix returns every entry whose key starts with prefix.
	GetByPrefix(ctx context.Context, prefix string) ([]Entry, error)
}
