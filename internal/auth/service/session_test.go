package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateOrUpdateSessionLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	pair, err := env.Tokens.CreateOrUpdateSession(ctx, env.Client.ID, env.User, "", "", true)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEmpty(t, pair.SessionID)

	res, err := env.Tokens.ValidateAccessToken(ctx, pair.AccessToken, false)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Equal(t, pair.SessionID, res.SessionID)
}

func TestCreateOrUpdateSessionRefreshRotation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	first, err := env.Tokens.CreateOrUpdateSession(ctx, env.Client.ID, env.User, "", "", true)
	require.NoError(t, err)

	second, err := env.Tokens.CreateOrUpdateSession(ctx, env.Client.ID, env.User, "", first.RefreshToken, false)
	require.NoError(t, err)

	t.Run("session id survives rotation", func(t *testing.T) {
		require.Equal(t, first.SessionID, second.SessionID)
	})

	t.Run("old refresh token is dead", func(t *testing.T) {
		res, err := env.Tokens.ValidateRefreshToken(ctx, first.RefreshToken, false)
		require.NoError(t, err)
		require.Nil(t, res)
	})

	t.Run("new pair is live", func(t *testing.T) {
		res, err := env.Tokens.ValidateRefreshToken(ctx, second.RefreshToken, false)
		require.NoError(t, err)
		require.NotNil(t, res)
		res, err = env.Tokens.ValidateAccessToken(ctx, second.AccessToken, false)
		require.NoError(t, err)
		require.NotNil(t, res)
	})
}

func TestCreateOrUpdateSessionForceNewSeversSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	first, err := env.Tokens.CreateOrUpdateSession(ctx, env.Client.ID, env.User, "", "", true)
	require.NoError(t, err)

	second, err := env.Tokens.CreateOrUpdateSession(ctx, env.Client.ID, env.User, first.AccessToken, "", true)
	require.NoError(t, err)
	require.NotEqual(t, first.SessionID, second.SessionID)
}

func TestCreateOrUpdateSessionRevokesSiblingRefresh(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	first, err := env.Tokens.CreateOrUpdateSession(ctx, env.Client.ID, env.User, "", "", true)
	require.NoError(t, err)

	// Present only the access token. The refresh token reachable through the
	// session's current pointer must be revoked regardless.
	_, err = env.Tokens.CreateOrUpdateSession(ctx, env.Client.ID, env.User, first.AccessToken, "", false)
	require.NoError(t, err)

	res, err := env.Tokens.ValidateRefreshToken(ctx, first.RefreshToken, false)
	require.NoError(t, err)
	require.Nil(t, res)

	res, err = env.Tokens.ValidateAccessToken(ctx, first.AccessToken, false)
	require.NoError(t, err)
	require.Nil(t, res)
}

func TestListSessions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	a := env.issue(t, "", true)
	b := env.issue(t, "", true)

	sessions, err := env.Sessions.ListSessions(ctx, env.Client.ID, env.User.ID, b.SessionID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	byID := map[string]bool{}
	for _, s := range sessions {
		byID[s.ID] = s.Current
		require.NotZero(t, s.CreatedAt)
	}
	require.False(t, byID[a.SessionID])
	require.True(t, byID[b.SessionID])
}

func TestGetSessionDetail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	first := env.issue(t, "", true)
	second := env.issue(t, first.SessionID, false)

	detail, err := env.Sessions.GetSession(ctx, env.Client.ID, env.User.ID, first.SessionID)
	require.NoError(t, err)
	require.Equal(t, first.SessionID, detail.Session.ID)

	// Both issuances appear; only the latest is current.
	require.Len(t, detail.AccessTokens, 2)
	require.Len(t, detail.RefreshTokens, 2)

	var current int
	for _, tok := range detail.AccessTokens {
		require.Equal(t, env.User.ID, tok.Subject)
		require.Equal(t, second.SessionID, tok.SessionID)
		if tok.Current {
			current++
		}
	}
	require.Equal(t, 1, current)
}

func TestGetSessionAbsent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, err := env.Sessions.GetSession(context.Background(), env.Client.ID, env.User.ID, "missing")
	require.Error(t, err)
}
