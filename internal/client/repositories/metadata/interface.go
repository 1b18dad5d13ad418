// Package metadata is a small key/value repository over the local SQLite
// database. The client keeps its durable state, such as the session token,
// in named slots of the metadata table.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set inserts or fully replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
