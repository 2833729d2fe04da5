package authabl_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/authabl/internal/auth/domain"
)

// TestRefreshRotation exercises the cookie rotation path: the session id
// survives the rotation while the superseded refresh token stops working.
func TestRefreshRotation(t *testing.T) {
	baseURL := setupStack(t)
	client := createTestClient(t, baseURL)
	api := newAPIClient(t, baseURL, client.Secret)
	registerTestUser(t, api, client.ID)
	loginWeb(t, api, client.ID)

	var before domain.TokenResult
	status := api.do(http.MethodGet, "/tokens/"+client.ID, nil, &before)
	require.Equal(t, http.StatusOK, status)

	oldAccess := api.cookieValue("accesstoken")
	oldRefresh := api.cookieValue("refreshtoken")

	status = api.do(http.MethodPost, "/tokens/"+client.ID+"/refresh", nil, nil)
	require.Equal(t, http.StatusOK, status)
	require.NotEqual(t, oldAccess, api.cookieValue("accesstoken"))
	require.NotEqual(t, oldRefresh, api.cookieValue("refreshtoken"))

	var after domain.TokenResult
	status = api.do(http.MethodGet, "/tokens/"+client.ID, nil, &after)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, before.SessionID, after.SessionID, "rotation keeps the session")

	t.Run("superseded refresh token is dead", func(t *testing.T) {
		fresh := newAPIClient(t, baseURL, client.Secret)
		status := fresh.do(http.MethodPost, "/tokens/"+client.ID+"/refresh", map[string]any{
			"refreshToken": oldRefresh,
		}, nil)
		require.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("body token rotates into the body", func(t *testing.T) {
		current := api.cookieValue("refreshtoken")

		fresh := newAPIClient(t, baseURL, client.Secret)
		var rotated struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		}
		status := fresh.do(http.MethodPost, "/tokens/"+client.ID+"/refresh", map[string]any{
			"refreshToken": current,
		}, &rotated)
		require.Equal(t, http.StatusOK, status)
		require.NotEmpty(t, rotated.AccessToken)
		require.NotEmpty(t, rotated.RefreshToken)
		require.Empty(t, fresh.cookieValue("accesstoken"), "body variant must not set cookies")

		var result domain.TokenResult
		status = fresh.doBearer(http.MethodGet, "/tokens/"+client.ID, rotated.AccessToken, &result)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, before.SessionID, result.SessionID)
	})
}
