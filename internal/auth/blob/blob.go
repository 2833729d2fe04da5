// Package blob abstracts the cold-storage side of the service: archived
// session documents. Objects are small JSON documents addressed by a
// slash-separated key and listed by prefix.
package blob

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("blob: not found")

// Store is implemented by the minio driver in production and the memory
// driver in tests and single-process deployments.
type Store interface {
	// Put writes or overwrites the object at key.
	Put(ctx context.Context, key string, data []byte) error

	// Get returns the object at key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the object at key. Absent keys are not an error.
	Delete(ctx context.Context, key string) error

	// List returns the keys of all objects under prefix, ordered.
	List(ctx context.Context, prefix string) ([]string, error)
}
