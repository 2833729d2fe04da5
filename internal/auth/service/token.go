// Package service implements the token and session lifecycle core: issuance,
// validation, rotation, revocation and archival, plus the client/user
// registries they depend on. Services are plain structs wired together in the
// app package; all state lives in the store.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/authabl/internal/auth/domain"
	"github.com/aussiebroadwan/authabl/internal/auth/store"
	"github.com/aussiebroadwan/authabl/pkg/idx"
	"github.com/aussiebroadwan/authabl/pkg/jwtx"
)

var (
	ErrInvalidClient      = errors.New("invalid_client")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidCode        = errors.New("invalid_code")
	ErrEmailTaken         = errors.New("email_taken")
	ErrUsernameTaken      = errors.New("username_taken")
)

// TokenService mints, validates and revokes token pairs. Access and refresh
// tokens are signed with separate secrets so a leaked refresh secret cannot
// forge access tokens (and vice versa), though validation never depends on
// either; see pkg/jwtx.
type TokenService struct {
	Store         store.Store
	Clients       *ClientService
	Issuer        string
	AccessSecret  []byte
	RefreshSecret []byte
}

func (s *TokenService) signer(kind domain.TokenKind) jwtx.Signer {
	if kind == domain.TokenKindRefresh {
		return jwtx.Signer{Secret: s.RefreshSecret}
	}
	return jwtx.Signer{Secret: s.AccessSecret}
}

// IssueTokens mints a fresh pair for one login or rotation.
//
// The supplied sessionID is reused unless forceNew is set or it is empty, in
// which case a new one is minted: rotation keeps a session's audit trail
// continuous, while logins and credential resets sever it. Every issued token
// writes three rows — the record, the index keyed by the literal signed
// string, and an append-only session link — and the session row itself is
// overwritten with the new current pointers.
func (s *TokenService) IssueTokens(
	ctx context.Context,
	clientID, userID, role string,
	sessionID string,
	forceNew bool,
) (*domain.TokenPair, error) {
	now := time.Now()

	client, err := s.Clients.Get(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidClient
		}
		return nil, err
	}

	if forceNew || sessionID == "" {
		sessionID = idx.New().String()
	}

	accessToken, accessIndexKey, err := s.issue(
		ctx, domain.TokenKindAccess, client, userID, role, sessionID, client.AccessTokenValidity, now,
	)
	if err != nil {
		return nil, err
	}

	pair := &domain.TokenPair{
		AccessToken:         accessToken,
		AccessTokenValidity: client.AccessTokenValidity,
		RefreshDisabled:     client.DisableRefreshToken,
		SessionID:           sessionID,
	}

	session := domain.SessionValue{
		UserID:              userID,
		AccessTokenIndexKey: accessIndexKey,
	}

	if !client.DisableRefreshToken {
		refreshToken, refreshIndexKey, err := s.issue(
			ctx, domain.TokenKindRefresh, client, userID, role, sessionID, client.RefreshTokenValidity, now,
		)
		if err != nil {
			return nil, err
		}
		pair.RefreshToken = refreshToken
		pair.RefreshTokenValidity = client.RefreshTokenValidity
		session.RefreshTokenIndexKey = refreshIndexKey
	}

	// Current-pointer row. Overwritten in place on every rotation that keeps
	// the session id, so createdAt tracks the last rotation.
	err = store.PutJSON(ctx, s.Store, store.SessionKey(clientID, userID, sessionID), session, store.PutOptions{
		Metadata: domain.SessionMetadata{CreatedAt: now.UnixMilli()},
	})
	if err != nil {
		return nil, err
	}

	return pair, nil
}

// issue signs one token and writes its record, index and session link.
func (s *TokenService) issue(
	ctx context.Context,
	kind domain.TokenKind,
	client domain.Client,
	userID, role, sessionID string,
	validity int64,
	now time.Time,
) (token, indexKey string, err error) {
	claims := jwtx.NewClaims(kind.JWTKind(), s.Issuer, userID, client.ID, sessionID, role, validity, now)

	token, err = s.signer(kind).Sign(claims)
	if err != nil {
		return "", "", err
	}

	recordID := idx.New().String()
	recordKey := store.TokenRecordKey(kind, client.ID, userID, recordID)
	indexKey = store.TokenIndexKey(kind, token)
	ttl := time.Duration(validity) * time.Second

	err = store.PutJSON(ctx, s.Store, recordKey, claims, store.PutOptions{
		TTL:      ttl,
		Metadata: domain.TokenMetadata{Validity: validity},
	})
	if err != nil {
		return "", "", err
	}

	if err := s.Store.Put(ctx, indexKey, []byte(recordKey), store.PutOptions{TTL: ttl}); err != nil {
		return "", "", err
	}

	// Audit link. No TTL: it outlives the token so session-detail views and
	// archival can enumerate every token ever issued under the session.
	linkKey := store.SessionTokenLinkKey(kind, client.ID, userID, sessionID, recordID)
	err = s.Store.Put(ctx, linkKey, []byte{}, store.PutOptions{
		Metadata: domain.SessionTokenLinkMetadata{IndexKey: indexKey, TokenKey: recordKey},
	})
	if err != nil {
		return "", "", err
	}

	return token, indexKey, nil
}
