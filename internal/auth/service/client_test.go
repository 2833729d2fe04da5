package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/authabl/internal/auth/domain"
	"github.com/aussiebroadwan/authabl/internal/auth/store"
	"github.com/stretchr/testify/require"
)

func TestClientCreateDefaults(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	client, err := env.Clients.Create(ctx, domain.Client{Name: "defaults"})
	require.NoError(t, err)
	require.NotEmpty(t, client.ID)
	require.NotEmpty(t, client.Secret)
	require.EqualValues(t, domain.DefaultAccessTokenValidity, client.AccessTokenValidity)
	require.EqualValues(t, domain.DefaultRefreshTokenValidity, client.RefreshTokenValidity)

	got, err := env.Clients.Get(ctx, client.ID)
	require.NoError(t, err)
	require.Equal(t, client, got)
}

func TestClientVerifySecret(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	require.NoError(t, env.Clients.VerifySecret(ctx, env.Client.ID, env.Client.Secret))
	require.ErrorIs(t, env.Clients.VerifySecret(ctx, env.Client.ID, "wrong"), ErrInvalidClient)
	require.ErrorIs(t, env.Clients.VerifySecret(ctx, "missing", env.Client.Secret), ErrInvalidClient)
}

func TestClientListAndDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	extra, err := env.Clients.Create(ctx, domain.Client{Name: "extra"})
	require.NoError(t, err)

	clients, err := env.Clients.List(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 2)

	require.NoError(t, env.Clients.Delete(ctx, extra.ID))

	_, err = env.Clients.Get(ctx, extra.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
