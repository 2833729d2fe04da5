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

// ValidateAccessToken authenticates a presented access token. A (nil, nil)
// return means absent or invalid; callers decide whether that is a 401.
func (s *TokenService) ValidateAccessToken(ctx context.Context, token string, withKeys bool) (*domain.TokenResult, error) {
	return s.validate(ctx, domain.TokenKindAccess, token, withKeys)
}

// ValidateRefreshToken is ValidateAccessToken for the refresh kind.
func (s *TokenService) ValidateRefreshToken(ctx context.Context, token string, withKeys bool) (*domain.TokenResult, error) {
	return s.validate(ctx, domain.TokenKindRefresh, token, withKeys)
}

// validate resolves a token string to its server-side record and checks it is
// live. The literal string is the index lookup key, so only a string handed
// out by IssueTokens resolves at all; the stored record, not the embedded
// signature, is the authority. Every failure mode reports (nil, nil) except a
// store outage, which is the one thing the caller cannot treat as a plain 401.
func (s *TokenService) validate(ctx context.Context, kind domain.TokenKind, token string, withKeys bool) (*domain.TokenResult, error) {
	if token == "" {
		return nil, nil
	}

	claims, err := jwtx.Decode(token)
	if err != nil {
		return nil, nil
	}

	indexKey := store.TokenIndexKey(kind, token)
	index, err := s.Store.Get(ctx, indexKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	recordKey := string(index.Value)
	record, err := s.Store.Get(ctx, recordKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var stored jwtx.Claims
	if err := json.Unmarshal(record.Value, &stored); err != nil {
		return nil, nil
	}

	// The presented string must describe exactly the token the record was
	// written for. Catches a tampered-but-parseable string that somehow still
	// resolved an index entry.
	if claims.Issuer != stored.Issuer ||
		claims.Subject != stored.Subject ||
		claims.Audience != stored.Audience ||
		claims.ExpiresAt != stored.ExpiresAt {
		return nil, nil
	}
	if stored.Issuer != s.Issuer {
		return nil, nil
	}

	now := time.Now().UnixMilli()
	if now >= stored.ExpiresAt || now < stored.IssuedAt {
		return nil, nil
	}

	var meta domain.TokenMetadata
	if err := record.UnmarshalMetadata(&meta); err != nil {
		return nil, nil
	}
	if meta.Revoked(now) {
		return nil, nil
	}

	result := &domain.TokenResult{
		UserID:    stored.Subject,
		ClientID:  stored.Audience,
		SessionID: stored.SessionID,
		Role:      stored.Role,
		IssuedAt:  stored.IssuedAt,
		ExpiresAt: stored.ExpiresAt,
	}
	if withKeys {
		result.IndexKey = indexKey
		result.RecordKey = recordKey
	}
	return result, nil
}
