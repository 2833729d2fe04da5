package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/aussiebroadwan/authabl/internal/auth/domain"
	"github.com/aussiebroadwan/authabl/internal/auth/store"
	"github.com/aussiebroadwan/authabl/pkg/jwtx"
)

// Invalidate soft-revokes the token record at recordKey by stamping revokedAt
// into its metadata. The record itself is never deleted here; archival owns
// deletion. Calling with an empty, absent or already-revoked key is a no-op,
// so rotation paths can pass whatever keys they resolved without checking.
func (s *TokenService) Invalidate(ctx context.Context, recordKey string) error {
	if recordKey == "" {
		return nil
	}

	record, err := s.Store.Get(ctx, recordKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}

	var meta domain.TokenMetadata
	if err := record.UnmarshalMetadata(&meta); err != nil {
		return err
	}
	if meta.RevokedAt != 0 {
		return nil
	}
	meta.RevokedAt = time.Now().UnixMilli()

	// Rewrite on the record's original expiry clock so revocation does not
	// extend its lifetime in the store.
	var ttl time.Duration
	var claims jwtx.Claims
	if err := json.Unmarshal(record.Value, &claims); err == nil && claims.ExpiresAt > meta.RevokedAt {
		ttl = time.Duration(claims.ExpiresAt-meta.RevokedAt) * time.Millisecond
	}

	return s.Store.Put(ctx, recordKey, record.Value, store.PutOptions{
		TTL:      ttl,
		Metadata: meta,
	})
}
