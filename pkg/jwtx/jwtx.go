// Package jwtx signs and decodes the compact token strings authabl hands out.
//
// Tokens are HS256-signed JWTs, but the service never verifies signatures on
// the way back in: the literal token string is the lookup key into a
// server-side index, and that index is the authority on validity. Decode
// therefore extracts claims without signature verification. Do not "fix" this
// by verifying; the trust model is opaque-reference, not stateless JWT.
package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token kinds carried in the "type" claim.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// ErrMalformed reports a token string that does not parse as a JWT at all.
var ErrMalformed = errors.New("jwtx: malformed token")

// Claims are embedded in the signed token string and stored verbatim as the
// server-side token record value. Timestamps are unix milliseconds.
type Claims struct {
	Subject   string `json:"sub"`
	Issuer    string `json:"iss"`
	Audience  string `json:"aud"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	Kind      string `json:"type"`
	SessionID string `json:"sid"`
	Role      string `json:"role,omitempty"`
}

// NewClaims builds claims for a token of the given kind. validity is in
// seconds, matching the client policy fields.
func NewClaims(kind, issuer, userID, clientID, sessionID, role string, validity int64, now time.Time) Claims {
	iat := now.UnixMilli()
	return Claims{
		Subject:   userID,
		Issuer:    issuer,
		Audience:  clientID,
		IssuedAt:  iat,
		ExpiresAt: iat + validity*1000,
		Kind:      kind,
		SessionID: sessionID,
		Role:      role,
	}
}

// jwt.Claims implementation. The library only consults these when validating,
// which we never do, but NewWithClaims requires the interface.

func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.UnixMilli(c.ExpiresAt)), nil
}

func (c Claims) GetIssuedAt() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.UnixMilli(c.IssuedAt)), nil
}

func (c Claims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }

func (c Claims) GetIssuer() (string, error) { return c.Issuer, nil }

func (c Claims) GetSubject() (string, error) { return c.Subject, nil }

func (c Claims) GetAudience() (jwt.ClaimStrings, error) {
	return jwt.ClaimStrings{c.Audience}, nil
}

// Signer produces compact signed token strings with a per-kind secret.
type Signer struct {
	Secret []byte
}

func (s Signer) Sign(c Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.Secret)
}

// Decode parses the claims out of a token string without verifying the
// signature. A nil error means only that the string is a well-formed JWT.
func Decode(token string) (*Claims, error) {
	var c Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return nil, ErrMalformed
	}
	return &c, nil
}
