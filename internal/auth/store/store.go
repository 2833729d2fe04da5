// Package store defines the key-value abstraction the auth core runs on.
// Entries are single keys carrying a value, a small JSON metadata blob
// returned alongside the value on read, and an optional TTL. There are no
// multi-key transactions or locks; every core flow is written to tolerate
// that (see the revocation and rotation paths in the service package).
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var ErrNotFound = errors.New("store: not found")

// Entry is one stored row. List results carry Key and Metadata only; fetch the
// value with Get if it is needed.
type Entry struct {
	Key      string
	Value    []byte
	Metadata json.RawMessage
}

// UnmarshalMetadata decodes the metadata blob into dst. A missing blob leaves
// dst untouched.
func (e *Entry) UnmarshalMetadata(dst any) error {
	if len(e.Metadata) == 0 {
		return nil
	}
	return json.Unmarshal(e.Metadata, dst)
}

// PutOptions carries the optional parts of a write.
type PutOptions struct {
	// TTL, when positive, causes the entry to expire and read as absent.
	// Expiry and explicit deletion are indistinguishable to readers.
	TTL time.Duration

	// Metadata is marshalled to JSON and stored alongside the value.
	Metadata any
}

// Store is the root data access interface. Concrete drivers (sqlite) implement
// this. Writes are atomic per key; there is deliberately no cross-key
// atomicity in the contract.
type Store interface {
	// Get returns the entry at key, or ErrNotFound if absent or expired.
	Get(ctx context.Context, key string) (*Entry, error)

	// Put creates or replaces the entry at key.
	Put(ctx context.Context, key string, value []byte, opts PutOptions) error

	// Delete removes the entry at key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns all live entries whose key starts with prefix, ordered by
	// key. Entries carry Key and Metadata only.
	List(ctx context.Context, prefix string) ([]Entry, error)

	// PurgeExpired physically deletes expired rows and reports how many went.
	// Reads already treat expired rows as absent; this is housekeeping.
	PurgeExpired(ctx context.Context) (int64, error)

	// ApplyMigrations brings the underlying schema up to date.
	ApplyMigrations() error

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

// PutJSON marshals value to JSON and writes it at key.
func PutJSON(ctx context.Context, s Store, key string, value any, opts PutOptions) error {
	buf, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Put(ctx, key, buf, opts)
}
