package domain

import "github.com/aussiebroadwan/authabl/pkg/jwtx"

// TokenKind distinguishes the two halves of an issued pair.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// JWTKind maps a TokenKind to the "type" claim value.
func (k TokenKind) JWTKind() string {
	if k == TokenKindRefresh {
		return jwtx.KindRefresh
	}
	return jwtx.KindAccess
}

// TokenMetadata rides alongside a token record in the store. RevokedAt is set
// exactly once by revocation and never cleared; zero means not revoked.
type TokenMetadata struct {
	Validity  int64 `json:"validity"`            // seconds
	RevokedAt int64 `json:"revokedAt,omitempty"` // unix ms
}

// Revoked reports whether the record counts as revoked at time now (ms).
func (m TokenMetadata) Revoked(now int64) bool {
	return m.RevokedAt != 0 && now >= m.RevokedAt
}

// TokenPair is what the issuer returns for one login or rotation.
type TokenPair struct {
	AccessToken          string `json:"accessToken"`
	AccessTokenValidity  int64  `json:"accessTokenValidity"` // seconds
	RefreshToken         string `json:"refreshToken,omitempty"`
	RefreshTokenValidity int64  `json:"refreshTokenValidity,omitempty"` // seconds
	RefreshDisabled      bool   `json:"disableRefreshToken,omitempty"`
	SessionID            string `json:"-"`
}

// TokenResult is the validator's normalized output for a live token.
// IndexKey/RecordKey are populated only when the caller asked for them;
// authorization-only callers get the claims fields alone.
type TokenResult struct {
	UserID    string `json:"userId"`
	ClientID  string `json:"clientId"`
	SessionID string `json:"sessionId"`
	Role      string `json:"role,omitempty"`
	IssuedAt  int64  `json:"createdAt"` // unix ms
	ExpiresAt int64  `json:"expiresAt"` // unix ms

	IndexKey  string `json:"-"`
	RecordKey string `json:"-"`
}
