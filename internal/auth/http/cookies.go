package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/authabl/internal/auth/domain"
)

// Cookie names for browser flows. Scoped to the whole site so every endpoint
// sees them; httpOnly keeps them away from scripts.
const (
	accessTokenCookie  = "accesstoken"
	refreshTokenCookie = "refreshtoken"
)

// setTokenCookies places a freshly issued pair in cookies, maxAge matching
// each token's validity so the browser drops them on expiry.
func setTokenCookies(w http.ResponseWriter, pair *domain.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   int(pair.AccessTokenValidity),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	if pair.RefreshToken != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     refreshTokenCookie,
			Value:    pair.RefreshToken,
			Path:     "/",
			MaxAge:   int(pair.RefreshTokenValidity),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// clearTokenCookies expires both cookies.
func clearTokenCookies(w http.ResponseWriter) {
	for _, name := range []string{accessTokenCookie, refreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// presentedAccessToken extracts the access token from a request: cookie first,
// then Authorization bearer. Returns "" when neither is present.
func presentedAccessToken(r *http.Request) string {
	if c, err := r.Cookie(accessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// presentedRefreshToken extracts the refresh token cookie. Body-supplied
// refresh tokens are handled by the refresh handler and take priority there.
func presentedRefreshToken(r *http.Request) string {
	if c, err := r.Cookie(refreshTokenCookie); err == nil {
		return c.Value
	}
	return ""
}
