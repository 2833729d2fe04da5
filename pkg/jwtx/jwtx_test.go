package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndDecodeRoundtrip(t *testing.T) {
	t.Parallel()

	now := time.Now()
	claims := NewClaims(KindAccess, "authabl", "user-1", "client-1", "sess-1", "admin", 3600, now)

	signer := Signer{Secret: []byte("access-secret")}
	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := Decode(token)
	require.NoError(t, err)
	require.Equal(t, claims, *decoded)
}

func TestNewClaimsExpiry(t *testing.T) {
	t.Parallel()

	now := time.Now()
	claims := NewClaims(KindRefresh, "authabl", "u", "c", "s", "user", 1209600, now)

	require.Equal(t, now.UnixMilli(), claims.IssuedAt)
	require.Equal(t, int64(1209600*1000), claims.ExpiresAt-claims.IssuedAt)
	require.Equal(t, KindRefresh, claims.Kind)
}

func TestDecodeDoesNotVerifySignature(t *testing.T) {
	t.Parallel()

	claims := NewClaims(KindAccess, "authabl", "u", "c", "s", "user", 60, time.Now())
	token, err := Signer{Secret: []byte("secret-a")}.Sign(claims)
	require.NoError(t, err)

	// Decoding succeeds regardless of the signing secret; validity is decided
	// by the store index, not the signature.
	decoded, err := Decode(token)
	require.NoError(t, err)
	require.Equal(t, "u", decoded.Subject)
}

func TestDecodeMalformed(t *testing.T) {
	t.Parallel()

	_, err := Decode("not-a-jwt")
	require.ErrorIs(t, err, ErrMalformed)

	_, err = Decode("")
	require.ErrorIs(t, err, ErrMalformed)
}
