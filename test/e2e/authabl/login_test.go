package authabl_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/authabl/internal/auth/domain"
)

// TestWebLoginFlow covers the cookie variant end to end: register, log in,
// validate the cookie-presented access token, and reject bad credentials.
func TestWebLoginFlow(t *testing.T) {
	baseURL := setupStack(t)
	client := createTestClient(t, baseURL)
	api := newAPIClient(t, baseURL, client.Secret)

	registered := registerTestUser(t, api, client.ID)
	require.NotEmpty(t, registered.VerificationCode, "email registration should mint a verification code")

	user := loginWeb(t, api, client.ID)
	require.Equal(t, registered.User.ID, user.ID)
	require.Equal(t, testEmail, user.Email)

	t.Run("validate accepts the cookie", func(t *testing.T) {
		var result domain.TokenResult
		status := api.do(http.MethodGet, "/tokens/"+client.ID, nil, &result)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, user.ID, result.UserID)
		require.Equal(t, client.ID, result.ClientID)
		require.NotEmpty(t, result.SessionID)
		require.Greater(t, result.ExpiresAt, result.IssuedAt)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		fresh := newAPIClient(t, baseURL, client.Secret)
		status := fresh.do(http.MethodPost, "/tokens/"+client.ID+"/web", map[string]any{
			"login":    testEmail,
			"password": "not-the-password",
		}, nil)
		require.Equal(t, http.StatusUnauthorized, status)
		require.Empty(t, fresh.cookieValue("accesstoken"))
	})

	t.Run("missing client key is rejected", func(t *testing.T) {
		anon := newAPIClient(t, baseURL, "")
		status := anon.do(http.MethodGet, "/tokens/"+client.ID, nil, nil)
		require.Equal(t, http.StatusUnauthorized, status)
	})
}

// TestMobileLoginFlow covers the body variant: the pair is returned in the
// response and presented back as a bearer token, with no cookies involved.
func TestMobileLoginFlow(t *testing.T) {
	baseURL := setupStack(t)
	client := createTestClient(t, baseURL)
	api := newAPIClient(t, baseURL, client.Secret)
	registerTestUser(t, api, client.ID)

	var login struct {
		User                 domain.User `json:"user"`
		AccessToken          string      `json:"accessToken"`
		AccessTokenValidity  int64       `json:"accessTokenValidity"`
		RefreshToken         string      `json:"refreshToken"`
		RefreshTokenValidity int64       `json:"refreshTokenValidity"`
	}
	status := api.do(http.MethodPost, "/tokens/"+client.ID+"/mobile", map[string]any{
		"username": testUsername,
		"password": testPassword,
	}, &login)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, login.AccessToken)
	require.NotEmpty(t, login.RefreshToken)
	require.EqualValues(t, 3600, login.AccessTokenValidity)
	require.EqualValues(t, 86400, login.RefreshTokenValidity)

	var result domain.TokenResult
	status = api.doBearer(http.MethodGet, "/tokens/"+client.ID, login.AccessToken, &result)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, login.User.ID, result.UserID)

	// The refresh token is not interchangeable with the access token.
	status = api.doBearer(http.MethodGet, "/tokens/"+client.ID, login.RefreshToken, nil)
	require.Equal(t, http.StatusUnauthorized, status)
}
