package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/authabl/internal/auth/blob"
	"github.com/aussiebroadwan/authabl/internal/auth/domain"
	"github.com/aussiebroadwan/authabl/internal/auth/store"
	"github.com/aussiebroadwan/authabl/pkg/jwtx"
	"github.com/aussiebroadwan/authabl/pkg/slogx"
)

// SessionService reads and tears down live sessions. Teardown is archival:
// the session's full token history is copied to the blob store before every
// live row is deleted, so the audit record survives the session.
type SessionService struct {
	Store store.Store
	Blob  blob.Store
}

// CurrentKeys carries the record/index keys of the token pair the caller
// presented, resolved through the validator with keys requested. Archival
// deletes these in addition to the linked keys, covering a current pointer
// that was rotated away from what the link list reaches. Any field may be
// empty.
type CurrentKeys struct {
	AccessRecordKey  string
	AccessIndexKey   string
	RefreshRecordKey string
	RefreshIndexKey  string
}

// archivePath builds the blob key for one session's archive document.
func archivePath(clientID, userID, sessionID string) string {
	return clientID + "/" + userID + "/" + sessionID
}

func archivePrefix(clientID, userID string) string {
	return clientID + "/" + userID + "/"
}

// Archive copies a session's full token history to the blob store and deletes
// every live row belonging to it: the session, every linked token record and
// index, the passed-in current keys, and the links themselves.
//
// Re-archiving a live session overwrites its blob document. Archiving a
// session that no longer exists and has no links is a no-op, so the document
// written by the first call is never clobbered by an empty second pass.
func (s *SessionService) Archive(ctx context.Context, clientID, userID, sessionID string, current CurrentKeys) error {
	l := slogx.FromContext(ctx)
	now := time.Now().UnixMilli()

	var createdAt int64
	sessionKey := store.SessionKey(clientID, userID, sessionID)
	entry, err := s.Store.Get(ctx, sessionKey)
	switch {
	case err == nil:
		var meta domain.SessionMetadata
		if err := entry.UnmarshalMetadata(&meta); err != nil {
			return err
		}
		createdAt = meta.CreatedAt
	case errors.Is(err, store.ErrNotFound):
		// keep going; links may still exist
	default:
		return err
	}

	accessClaims, accessLinks, err := s.collect(ctx, domain.TokenKindAccess, clientID, userID, sessionID)
	if err != nil {
		return err
	}
	refreshClaims, refreshLinks, err := s.collect(ctx, domain.TokenKindRefresh, clientID, userID, sessionID)
	if err != nil {
		return err
	}

	if entry == nil && len(accessLinks) == 0 && len(refreshLinks) == 0 {
		return nil
	}

	doc, err := json.Marshal(domain.ArchivedSession{
		ID:            sessionID,
		CreatedAt:     createdAt,
		DeletedAt:     now,
		AccessTokens:  accessClaims,
		RefreshTokens: refreshClaims,
	})
	if err != nil {
		return err
	}
	if err := s.Blob.Put(ctx, archivePath(clientID, userID, sessionID), doc); err != nil {
		return err
	}

	// The archive document is written; everything from here is cleanup of
	// rows that would otherwise expire on their own or read as revoked.
	var keys []string
	keys = append(keys, sessionKey)
	for _, link := range append(accessLinks, refreshLinks...) {
		keys = append(keys, link.Key, link.Meta.TokenKey, link.Meta.IndexKey)
	}
	keys = append(keys,
		current.AccessRecordKey, current.AccessIndexKey,
		current.RefreshRecordKey, current.RefreshIndexKey,
	)

	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.Store.Delete(ctx, key); err != nil {
			l.Warn("failed to delete archived session row",
				slog.String("key", key),
				slog.Any("error", err),
			)
		}
	}

	l.Info("session archived",
		slog.String("client_id", clientID),
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
		slog.Int("access_tokens", len(accessClaims)),
		slog.Int("refresh_tokens", len(refreshClaims)),
	)
	return nil
}

type resolvedLink struct {
	Key  string
	Meta domain.SessionTokenLinkMetadata
}

// collect walks a session's link entries of one kind and fetches each linked
// record's claims. Records already gone (expired) contribute no claims but
// their link still gets cleaned up.
func (s *SessionService) collect(
	ctx context.Context,
	kind domain.TokenKind,
	clientID, userID, sessionID string,
) ([]jwtx.Claims, []resolvedLink, error) {
	entries, err := s.Store.List(ctx, store.SessionTokenLinksPrefix(kind, clientID, userID, sessionID))
	if err != nil {
		return nil, nil, err
	}

	claims := []jwtx.Claims{}
	links := make([]resolvedLink, 0, len(entries))
	for _, entry := range entries {
		var meta domain.SessionTokenLinkMetadata
		if err := entry.UnmarshalMetadata(&meta); err != nil {
			return nil, nil, err
		}
		links = append(links, resolvedLink{Key: entry.Key, Meta: meta})

		record, err := s.Store.Get(ctx, meta.TokenKey)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, nil, err
		}
		var c jwtx.Claims
		if err := json.Unmarshal(record.Value, &c); err != nil {
			return nil, nil, err
		}
		claims = append(claims, c)
	}
	return claims, links, nil
}

// ListSessions returns a user's live sessions, flagging the one the caller is
// currently authenticated under.
func (s *SessionService) ListSessions(ctx context.Context, clientID, userID, currentSessionID string) ([]domain.SessionInfo, error) {
	entries, err := s.Store.List(ctx, store.SessionsPrefix(clientID, userID))
	if err != nil {
		return nil, err
	}

	sessions := make([]domain.SessionInfo, 0, len(entries))
	for _, entry := range entries {
		var meta domain.SessionMetadata
		if err := entry.UnmarshalMetadata(&meta); err != nil {
			return nil, err
		}
		id := store.SessionIDFromKey(entry.Key, clientID, userID)
		sessions = append(sessions, domain.SessionInfo{
			ID:        id,
			CreatedAt: meta.CreatedAt,
			Current:   id == currentSessionID,
		})
	}
	return sessions, nil
}

// GetSession returns one live session with its full token history, current
// and rotated-away tokens alike. store.ErrNotFound when the session is gone.
func (s *SessionService) GetSession(ctx context.Context, clientID, userID, sessionID string) (*domain.SessionDetail, error) {
	entry, err := s.Store.Get(ctx, store.SessionKey(clientID, userID, sessionID))
	if err != nil {
		return nil, err
	}

	var value domain.SessionValue
	if err := json.Unmarshal(entry.Value, &value); err != nil {
		return nil, err
	}
	var meta domain.SessionMetadata
	if err := entry.UnmarshalMetadata(&meta); err != nil {
		return nil, err
	}

	accessTokens, err := s.history(ctx, domain.TokenKindAccess, clientID, userID, sessionID, value.AccessTokenIndexKey)
	if err != nil {
		return nil, err
	}
	refreshTokens, err := s.history(ctx, domain.TokenKindRefresh, clientID, userID, sessionID, value.RefreshTokenIndexKey)
	if err != nil {
		return nil, err
	}

	return &domain.SessionDetail{
		Session: domain.SessionInfo{
			ID:        sessionID,
			CreatedAt: meta.CreatedAt,
			Current:   true,
		},
		AccessTokens:  accessTokens,
		RefreshTokens: refreshTokens,
	}, nil
}

// history builds the detail-view token list for one kind. currentIndexKey is
// the session's live pointer; the matching token is flagged Current.
func (s *SessionService) history(
	ctx context.Context,
	kind domain.TokenKind,
	clientID, userID, sessionID, currentIndexKey string,
) ([]domain.SessionToken, error) {
	entries, err := s.Store.List(ctx, store.SessionTokenLinksPrefix(kind, clientID, userID, sessionID))
	if err != nil {
		return nil, err
	}

	tokens := make([]domain.SessionToken, 0, len(entries))
	for _, entry := range entries {
		var linkMeta domain.SessionTokenLinkMetadata
		if err := entry.UnmarshalMetadata(&linkMeta); err != nil {
			return nil, err
		}

		record, err := s.Store.Get(ctx, linkMeta.TokenKey)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		var claims jwtx.Claims
		if err := json.Unmarshal(record.Value, &claims); err != nil {
			return nil, err
		}
		var tokenMeta domain.TokenMetadata
		if err := record.UnmarshalMetadata(&tokenMeta); err != nil {
			return nil, err
		}

		tokens = append(tokens, domain.SessionToken{
			ID:        store.TokenRecordID(linkMeta.TokenKey),
			Claims:    claims,
			Validity:  tokenMeta.Validity,
			RevokedAt: tokenMeta.RevokedAt,
			Current:   linkMeta.IndexKey == currentIndexKey,
		})
	}
	return tokens, nil
}

// ClearSessions archives every live session a user has.
func (s *SessionService) ClearSessions(ctx context.Context, clientID, userID string) error {
	entries, err := s.Store.List(ctx, store.SessionsPrefix(clientID, userID))
	if err != nil {
		return err
	}
	for _, entry := range entries {
		sessionID := store.SessionIDFromKey(entry.Key, clientID, userID)
		if err := s.Archive(ctx, clientID, userID, sessionID, CurrentKeys{}); err != nil {
			return err
		}
	}
	return nil
}

// ListArchivedSessions reads a user's archive documents back out of the blob
// store, oldest key first.
func (s *SessionService) ListArchivedSessions(ctx context.Context, clientID, userID string) ([]domain.ArchivedSession, error) {
	keys, err := s.Blob.List(ctx, archivePrefix(clientID, userID))
	if err != nil {
		return nil, err
	}

	archived := make([]domain.ArchivedSession, 0, len(keys))
	for _, key := range keys {
		doc, err := s.Blob.Get(ctx, key)
		if err != nil {
			if errors.Is(err, blob.ErrNotFound) {
				continue
			}
			return nil, err
		}
		var session domain.ArchivedSession
		if err := json.Unmarshal(doc, &session); err != nil {
			return nil, err
		}
		archived = append(archived, session)
	}
	return archived, nil
}
