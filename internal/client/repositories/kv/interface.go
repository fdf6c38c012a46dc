// Package kv is the raw key/value persistence layer of the client: one
// SQLite table mapping string keys to opaque byte values.
package kv

import (
	"context"
)

// Repository stores opaque values under string keys.
//
// Get returns (nil, nil) for a missing key. Delete of a missing key is not
// an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
