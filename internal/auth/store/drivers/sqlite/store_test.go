package sqlite

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aussiebroadwan/authabl/internal/auth/store"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestPutGetDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	type meta struct {
		CreatedAt int64 `json:"createdAt"`
	}

	err := s.Put(ctx, "s:c1:u1:sess", []byte(`{"userId":"u1"}`), store.PutOptions{
		Metadata: meta{CreatedAt: 42},
	})
	require.NoError(t, err)

	entry, err := s.Get(ctx, "s:c1:u1:sess")
	require.NoError(t, err)
	require.JSONEq(t, `{"userId":"u1"}`, string(entry.Value))

	var m meta
	require.NoError(t, entry.UnmarshalMetadata(&m))
	require.Equal(t, int64(42), m.CreatedAt)

	require.NoError(t, s.Delete(ctx, "s:c1:u1:sess"))
	_, err = s.Get(ctx, "s:c1:u1:sess")
	require.ErrorIs(t, err, store.ErrNotFound)

	// Deleting again is not an error.
	require.NoError(t, s.Delete(ctx, "s:c1:u1:sess"))
}

func TestPutOverwritesValueAndMetadata(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Put(ctx, "k", []byte("one"), store.PutOptions{Metadata: map[string]int{"v": 1}}))
	require.NoError(t, s.Put(ctx, "k", []byte("two"), store.PutOptions{Metadata: map[string]int{"v": 2}}))

	entry, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "two", string(entry.Value))
	require.JSONEq(t, `{"v":2}`, string(entry.Metadata))
}

func TestTTLExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Put(ctx, "ephemeral", []byte("x"), store.PutOptions{TTL: 10 * time.Millisecond}))
	require.NoError(t, s.Put(ctx, "durable", []byte("y"), store.PutOptions{}))

	time.Sleep(30 * time.Millisecond)

	_, err := s.Get(ctx, "ephemeral")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Get(ctx, "durable")
	require.NoError(t, err)

	entries, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	purged, err := s.PurgeExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), purged)
}

func TestListByPrefix(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	put := func(key string, meta any) {
		require.NoError(t, s.Put(ctx, key, []byte("v"), store.PutOptions{Metadata: meta}))
	}

	put("sa:c1:u1:sess:tok1", map[string]string{"tokenKey": "ta:c1:u1:tok1"})
	put("sa:c1:u1:sess:tok2", map[string]string{"tokenKey": "ta:c1:u1:tok2"})
	put("sa:c1:u2:sess:tok3", nil)
	put("sr:c1:u1:sess:tok4", nil)

	entries, err := s.List(ctx, "sa:c1:u1:sess:")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "sa:c1:u1:sess:tok1", entries[0].Key)
	require.Equal(t, "sa:c1:u1:sess:tok2", entries[1].Key)

	var m map[string]string
	require.NoError(t, json.Unmarshal(entries[0].Metadata, &m))
	require.Equal(t, "ta:c1:u1:tok1", m["tokenKey"])

	// Keys containing LIKE wildcards must not leak across prefixes.
	put("x_y", nil)
	put("xzy", nil)
	entries, err = s.List(ctx, "x_")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "x_y", entries[0].Key)
}
