package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/authabl/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestIssueTokensRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	pair := env.issue(t, "", false)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEmpty(t, pair.SessionID)
	require.Equal(t, env.Client.AccessTokenValidity, pair.AccessTokenValidity)
	require.Equal(t, env.Client.RefreshTokenValidity, pair.RefreshTokenValidity)
	require.False(t, pair.RefreshDisabled)

	t.Run("access token validates to issuance inputs", func(t *testing.T) {
		res, err := env.Tokens.ValidateAccessToken(ctx, pair.AccessToken, false)
		require.NoError(t, err)
		require.NotNil(t, res)
		require.Equal(t, env.User.ID, res.UserID)
		require.Equal(t, env.Client.ID, res.ClientID)
		require.Equal(t, pair.SessionID, res.SessionID)
		require.Equal(t, "member", res.Role)
		require.Equal(t, res.IssuedAt+pair.AccessTokenValidity*1000, res.ExpiresAt)
	})

	t.Run("refresh token validates under the refresh kind only", func(t *testing.T) {
		res, err := env.Tokens.ValidateRefreshToken(ctx, pair.RefreshToken, false)
		require.NoError(t, err)
		require.NotNil(t, res)
		require.Equal(t, pair.SessionID, res.SessionID)

		crossed, err := env.Tokens.ValidateAccessToken(ctx, pair.RefreshToken, false)
		require.NoError(t, err)
		require.Nil(t, crossed)
	})

	t.Run("keys withheld unless requested", func(t *testing.T) {
		res, err := env.Tokens.ValidateAccessToken(ctx, pair.AccessToken, false)
		require.NoError(t, err)
		require.Empty(t, res.IndexKey)
		require.Empty(t, res.RecordKey)

		res, err = env.Tokens.ValidateAccessToken(ctx, pair.AccessToken, true)
		require.NoError(t, err)
		require.NotEmpty(t, res.IndexKey)
		require.NotEmpty(t, res.RecordKey)
	})
}

func TestIssueTokensUnknownClient(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, err := env.Tokens.IssueTokens(context.Background(), "nope", env.User.ID, "member", "", false)
	require.ErrorIs(t, err, ErrInvalidClient)
}

func TestIssueTokensRefreshDisabled(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	client, err := env.Clients.Create(ctx, domainClientNoRefresh())
	require.NoError(t, err)

	pair, err := env.Tokens.IssueTokens(ctx, client.ID, env.User.ID, "member", "", false)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.Empty(t, pair.RefreshToken)
	require.True(t, pair.RefreshDisabled)
}

func TestValidateRejectsForeignToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	// A well-formed, correctly signed token that was never issued through the
	// store resolves no index entry and is therefore invalid.
	claims := jwtx.NewClaims(jwtx.KindAccess, testIssuer, env.User.ID, env.Client.ID, "sess", "member", 3600, nowForTest())
	token, err := jwtx.Signer{Secret: []byte("access-secret")}.Sign(claims)
	require.NoError(t, err)

	res, err := env.Tokens.ValidateAccessToken(ctx, token, false)
	require.NoError(t, err)
	require.Nil(t, res)
}

func TestValidateRejectsGarbage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	for _, token := range []string{"", "not-a-jwt", "a.b"} {
		res, err := env.Tokens.ValidateAccessToken(ctx, token, false)
		require.NoError(t, err)
		require.Nil(t, res)
	}
}

func TestInvalidate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	pair := env.issue(t, "", false)
	res, err := env.Tokens.ValidateAccessToken(ctx, pair.AccessToken, true)
	require.NoError(t, err)
	require.NotNil(t, res)

	require.NoError(t, env.Tokens.Invalidate(ctx, res.RecordKey))

	t.Run("revoked token reads as absent while unexpired", func(t *testing.T) {
		revoked, err := env.Tokens.ValidateAccessToken(ctx, pair.AccessToken, false)
		require.NoError(t, err)
		require.Nil(t, revoked)
	})

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, env.Tokens.Invalidate(ctx, res.RecordKey))
	})

	t.Run("no-op on empty and absent keys", func(t *testing.T) {
		require.NoError(t, env.Tokens.Invalidate(ctx, ""))
		require.NoError(t, env.Tokens.Invalidate(ctx, "ta:c:u:missing"))
	})

	t.Run("refresh token untouched", func(t *testing.T) {
		still, err := env.Tokens.ValidateRefreshToken(ctx, pair.RefreshToken, false)
		require.NoError(t, err)
		require.NotNil(t, still)
	})
}
