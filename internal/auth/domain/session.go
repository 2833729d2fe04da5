package domain

import "github.com/aussiebroadwan/authabl/pkg/jwtx"

// SessionValue is the current-pointer half of session bookkeeping: which token
// pair is live right now. It is overwritten in place on every rotation that
// keeps the session id. The full issuance history lives in the link entries.
type SessionValue struct {
	UserID               string `json:"userId"`
	AccessTokenIndexKey  string `json:"accessTokenIndexKey"`
	RefreshTokenIndexKey string `json:"refreshTokenIndexKey,omitempty"`
}

// SessionMetadata is stored alongside the session row. CreatedAt is rewritten
// on every rotation sharing the session id, so it tracks the last rotation
// rather than the original login.
type SessionMetadata struct {
	CreatedAt int64 `json:"createdAt"` // unix ms
}

// SessionTokenLinkMetadata is attached to one append-only link entry per token
// ever issued under a session.
type SessionTokenLinkMetadata struct {
	IndexKey string `json:"indexKey"`
	TokenKey string `json:"tokenKey"`
}

// SessionInfo is one entry in the live-session listing.
type SessionInfo struct {
	ID        string `json:"id"`
	CreatedAt int64  `json:"createdAt"`
	Current   bool   `json:"current"`
}

// SessionToken is one historical token in a session-detail view.
type SessionToken struct {
	ID string `json:"id"` // token record id

	jwtx.Claims

	Validity  int64 `json:"validity"`
	RevokedAt int64 `json:"revokedAt,omitempty"`
	Current   bool  `json:"current"`
}

// SessionDetail is the full token history of one live session.
type SessionDetail struct {
	Session       SessionInfo    `json:"session"`
	AccessTokens  []SessionToken `json:"accessTokens"`
	RefreshTokens []SessionToken `json:"refreshTokens"`
}

// ArchivedSession is the write-once audit document persisted to the blob store
// when a session is torn down.
type ArchivedSession struct {
	ID            string        `json:"id"`
	CreatedAt     int64         `json:"createdAt"`
	DeletedAt     int64         `json:"deletedAt"`
	AccessTokens  []jwtx.Claims `json:"accessTokens"`
	RefreshTokens []jwtx.Claims `json:"refreshTokens"`
}
