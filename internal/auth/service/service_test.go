package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/authabl/internal/auth/blob/drivers/memory"
	"github.com/aussiebroadwan/authabl/internal/auth/domain"
	"github.com/aussiebroadwan/authabl/internal/auth/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

const testIssuer = "authabl-test"

type testEnv struct {
	Tokens   *TokenService
	Sessions *SessionService
	Clients  *ClientService
	Users    *UserService
	Codes    *CodeService
	Blob     *memory.Store
	Client   domain.Client
	User     domain.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	bl := memory.NewStore()

	clients := &ClientService{Store: st}
	sessions := &SessionService{Store: st, Blob: bl}
	users := &UserService{Store: st, Sessions: sessions}
	tokens := &TokenService{
		Store:         st,
		Clients:       clients,
		Issuer:        testIssuer,
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
	}
	codes := &CodeService{Store: st, Users: users, Sessions: sessions}

	client, err := clients.Create(ctx, domain.Client{Name: "test app"})
	require.NoError(t, err)

	user, err := users.Register(ctx, client.ID, domain.User{
		Email:    "alice@example.com",
		Username: "alice",
		Role:     "member",
	}, "hunter2hunter2")
	require.NoError(t, err)

	return &testEnv{
		Tokens:   tokens,
		Sessions: sessions,
		Clients:  clients,
		Users:    users,
		Codes:    codes,
		Blob:     bl,
		Client:   client,
		User:     user,
	}
}

func domainClientNoRefresh() domain.Client {
	return domain.Client{Name: "no refresh", DisableRefreshToken: true}
}

func nowForTest() time.Time { return time.Now() }

func (e *testEnv) issue(t *testing.T, sessionID string, forceNew bool) *domain.TokenPair {
	t.Helper()
	pair, err := e.Tokens.IssueTokens(context.Background(), e.Client.ID, e.User.ID, e.User.Role, sessionID, forceNew)
	require.NoError(t, err)
	return pair
}
