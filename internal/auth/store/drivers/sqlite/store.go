// Package sqlite implements the KV store contract over a single sqlite table.
// TTL is modelled as an expires_at column: reads filter expired rows out, and
// housekeeping purges them, so expiry is indistinguishable from deletion to
// every reader, matching what a hosted KV with native TTL would do.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/aussiebroadwan/authabl/internal/auth/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// The modernc driver serializes writes per connection; a single connection
	// avoids SQLITE_BUSY on concurrent writers.
	db.SetMaxOpenConns(1)

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Get(ctx context.Context, key string) (*store.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT value, metadata
		FROM kv
		WHERE key = ? AND (expires_at IS NULL OR expires_at > ?)`,
		key, time.Now().UnixMilli(),
	)

	entry := store.Entry{Key: key}
	var metadata []byte
	if err := row.Scan(&entry.Value, &metadata); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	entry.Metadata = json.RawMessage(metadata)

	return &entry, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte, opts store.PutOptions) error {
	var expiresAt sql.NullInt64
	if opts.TTL > 0 {
		expiresAt = sql.NullInt64{Int64: time.Now().Add(opts.TTL).UnixMilli(), Valid: true}
	}

	var metadata []byte
	if opts.Metadata != nil {
		buf, err := json.Marshal(opts.Metadata)
		if err != nil {
			return err
		}
		metadata = buf
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, metadata, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value      = excluded.value,
			metadata   = excluded.metadata,
			expires_at = excluded.expires_at`,
		key, value, metadata, expiresAt,
	)
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

func (s *Store) List(ctx context.Context, prefix string) ([]store.Entry, error) {
	// Range scan instead of LIKE: keys contain base64url token strings, and
	// '_' is a LIKE wildcard. 0xff sorts above every byte that appears in a
	// key, so [prefix, prefix+0xff) covers exactly the prefix.
	upper := prefix + "\xff"

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, metadata
		FROM kv
		WHERE key >= ? AND key < ? AND (expires_at IS NULL OR expires_at > ?)
		ORDER BY key`,
		prefix, upper, time.Now().UnixMilli(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []store.Entry
	for rows.Next() {
		var entry store.Entry
		var metadata []byte
		if err := rows.Scan(&entry.Key, &metadata); err != nil {
			return nil, err
		}
		entry.Metadata = json.RawMessage(metadata)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM kv WHERE expires_at IS NOT NULL AND expires_at <= ?`,
		time.Now().UnixMilli(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
