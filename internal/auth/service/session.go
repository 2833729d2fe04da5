package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/authabl/internal/auth/domain"
	"github.com/aussiebroadwan/authabl/internal/auth/store"
	"github.com/aussiebroadwan/authabl/pkg/slogx"
)

// CreateOrUpdateSession is the single chokepoint for login, refresh,
// verification completion and password-reset completion. It revokes whatever
// token pair the caller currently holds, then issues a fresh one.
//
// The presented tokens are raw strings as extracted by the HTTP layer (either
// may be empty). Refresh reuses the session id so the audit trail stays one
// continuous session; forceNew severs it, which login and credential resets
// want.
func (s *TokenService) CreateOrUpdateSession(
	ctx context.Context,
	clientID string,
	user domain.User,
	accessToken, refreshToken string,
	forceNew bool,
) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	accessRes, err := s.ValidateAccessToken(ctx, accessToken, true)
	if err != nil {
		return nil, err
	}
	refreshRes, err := s.ValidateRefreshToken(ctx, refreshToken, true)
	if err != nil {
		return nil, err
	}

	var accessRecordKey, refreshRecordKey string
	if accessRes != nil {
		accessRecordKey = accessRes.RecordKey
	}
	if refreshRes != nil {
		refreshRecordKey = refreshRes.RecordKey
	} else if accessRes != nil {
		// No refresh token presented, but a live access token implies a
		// sibling refresh token reachable through the session's current
		// pointer. Resolve and revoke it too, so logout-by-access-token-only
		// does not leave a live refresh token behind.
		refreshRecordKey, err = s.currentRefreshRecordKey(ctx, clientID, accessRes.UserID, accessRes.SessionID)
		if err != nil {
			return nil, err
		}
	}

	// Best effort: a failed revocation leaves the old token valid until its
	// natural expiry, and there is no compensating rollback.
	if err := s.Invalidate(ctx, accessRecordKey); err != nil {
		l.Warn("failed to revoke previous access token", slog.Any("error", err))
	}
	if err := s.Invalidate(ctx, refreshRecordKey); err != nil {
		l.Warn("failed to revoke previous refresh token", slog.Any("error", err))
	}

	sessionID := ""
	if accessRes != nil {
		sessionID = accessRes.SessionID
	} else if refreshRes != nil {
		sessionID = refreshRes.SessionID
	}

	return s.IssueTokens(ctx, clientID, user.ID, user.Role, sessionID, forceNew)
}

// currentRefreshRecordKey follows session row → refresh index → record key.
// Returns "" when any hop is absent.
func (s *TokenService) currentRefreshRecordKey(ctx context.Context, clientID, userID, sessionID string) (string, error) {
	entry, err := s.Store.Get(ctx, store.SessionKey(clientID, userID, sessionID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	var value domain.SessionValue
	if err := json.Unmarshal(entry.Value, &value); err != nil {
		return "", err
	}
	if value.RefreshTokenIndexKey == "" {
		return "", nil
	}

	index, err := s.Store.Get(ctx, value.RefreshTokenIndexKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(index.Value), nil
}
