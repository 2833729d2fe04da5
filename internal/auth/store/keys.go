package store

import (
	"strings"

	"github.com/aussiebroadwan/authabl/internal/auth/domain"
)

// Key prefixes. Short on purpose: every token ever issued writes several rows,
// and the token index key already embeds the full signed token string.
const (
	clientPrefix             = "c"
	userPrefix               = "u"
	emailIndexPrefix         = "ue"
	usernameIndexPrefix      = "uu"
	verificationCodePrefix   = "ev"
	forgotPasswordCodePrefix = "pf"

	accessTokenPrefix       = "ta"
	accessTokenIndexPrefix  = "tai"
	refreshTokenPrefix      = "tr"
	refreshTokenIndexPrefix = "tri"

	sessionPrefix             = "s"
	sessionAccessTokenPrefix  = "sa"
	sessionRefreshTokenPrefix = "sr"
)

const sep = ":"

func join(parts ...string) string { return strings.Join(parts, sep) }

func tokenPrefix(kind domain.TokenKind) string {
	if kind == domain.TokenKindRefresh {
		return refreshTokenPrefix
	}
	return accessTokenPrefix
}

func tokenIndexPrefix(kind domain.TokenKind) string {
	if kind == domain.TokenKindRefresh {
		return refreshTokenIndexPrefix
	}
	return accessTokenIndexPrefix
}

func sessionLinkPrefix(kind domain.TokenKind) string {
	if kind == domain.TokenKindRefresh {
		return sessionRefreshTokenPrefix
	}
	return sessionAccessTokenPrefix
}

// ClientKey addresses one client document.
func ClientKey(clientID string) string { return join(clientPrefix, clientID) }

// ClientsPrefix lists every client document.
func ClientsPrefix() string { return clientPrefix + sep }

// UserKey addresses one user document.
func UserKey(clientID, userID string) string { return join(userPrefix, clientID, userID) }

// UsersPrefix lists a client's users.
func UsersPrefix(clientID string) string { return join(userPrefix, clientID) + sep }

// EmailIndexKey maps an email address to a user id.
func EmailIndexKey(clientID, email string) string { return join(emailIndexPrefix, clientID, email) }

// UsernameIndexKey maps a username to a user id.
func UsernameIndexKey(clientID, username string) string {
	return join(usernameIndexPrefix, clientID, username)
}

// VerificationCodeKey addresses a pending email-verification code.
func VerificationCodeKey(clientID, userID string) string {
	return join(verificationCodePrefix, clientID, userID)
}

// ForgotPasswordCodeKey addresses a pending password-reset code.
func ForgotPasswordCodeKey(clientID, userID string) string {
	return join(forgotPasswordCodePrefix, clientID, userID)
}

// TokenRecordKey addresses the server-side record for one issued token.
func TokenRecordKey(kind domain.TokenKind, clientID, userID, recordID string) string {
	return join(tokenPrefix(kind), clientID, userID, recordID)
}

// TokenIndexKey addresses the index entry keyed by the literal signed token
// string. This key is the validation authority: a token with no index entry is
// invalid no matter what its claims say.
func TokenIndexKey(kind domain.TokenKind, token string) string {
	return join(tokenIndexPrefix(kind), token)
}

// SessionKey addresses one live session row.
func SessionKey(clientID, userID, sessionID string) string {
	return join(sessionPrefix, clientID, userID, sessionID)
}

// SessionsPrefix lists a user's live sessions.
func SessionsPrefix(clientID, userID string) string {
	return join(sessionPrefix, clientID, userID) + sep
}

// SessionIDFromKey recovers the session id from a key produced by SessionKey.
func SessionIDFromKey(key, clientID, userID string) string {
	return strings.TrimPrefix(key, SessionsPrefix(clientID, userID))
}

// SessionTokenLinkKey addresses one append-only session→token link entry.
func SessionTokenLinkKey(kind domain.TokenKind, clientID, userID, sessionID, recordID string) string {
	return join(sessionLinkPrefix(kind), clientID, userID, sessionID, recordID)
}

// SessionTokenLinksPrefix lists every token of one kind ever issued under a
// session.
func SessionTokenLinksPrefix(kind domain.TokenKind, clientID, userID, sessionID string) string {
	return join(sessionLinkPrefix(kind), clientID, userID, sessionID) + sep
}

// TokenRecordID recovers the record id from a token record key. Record ids are
// ULIDs, so the final segment is unambiguous.
func TokenRecordID(tokenKey string) string {
	if i := strings.LastIndex(tokenKey, sep); i >= 0 {
		return tokenKey[i+1:]
	}
	return tokenKey
}
