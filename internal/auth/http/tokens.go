package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/authabl/internal/auth/domain"
	"github.com/aussiebroadwan/authabl/internal/auth/service"
	"github.com/aussiebroadwan/authabl/pkg/httpx"
	"github.com/aussiebroadwan/authabl/pkg/slogx"
)

// TokensHandler implements the login, validation, refresh and logout
// endpoints.
type TokensHandler struct {
	TokenService   *service.TokenService
	UserService    *service.UserService
	SessionService *service.SessionService
}

// LoginRequest is the credential body for both login variants. Login is
// matched against the email registry when it contains an "@", the username
// registry otherwise; the Email and Username fields are accepted as explicit
// alternatives.
type LoginRequest struct {
	Login    string `json:"login,omitempty"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}

func (req LoginRequest) login() string {
	for _, candidate := range []string{req.Login, req.Email, req.Username} {
		if strings.TrimSpace(candidate) != "" {
			return strings.TrimSpace(candidate)
		}
	}
	return ""
}

// MobileLoginResponse carries the profile and the token pair in the body for
// clients that cannot use cookies.
type MobileLoginResponse struct {
	User                 domain.User `json:"user"`
	AccessToken          string      `json:"accessToken"`
	AccessTokenValidity  int64       `json:"accessTokenValidity"`
	RefreshToken         string      `json:"refreshToken,omitempty"`
	RefreshTokenValidity int64       `json:"refreshTokenValidity,omitempty"`
}

// RefreshRequest optionally carries the refresh token in the body; when
// present it takes priority over the cookie and the new pair is returned in
// the body instead of cookies.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

// RefreshResponse is the body-variant rotation result.
type RefreshResponse struct {
	AccessToken          string `json:"accessToken"`
	AccessTokenValidity  int64  `json:"accessTokenValidity"`
	RefreshToken         string `json:"refreshToken,omitempty"`
	RefreshTokenValidity int64  `json:"refreshTokenValidity,omitempty"`
}

// login authenticates the credentials and rotates in a brand-new session.
func (h *TokensHandler) login(w http.ResponseWriter, r *http.Request) (*domain.User, *domain.TokenPair, bool) {
	ctx := r.Context()
	clientID := r.PathValue("clientId")

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.login() == "" || req.Password == "" {
		httpx.WriteStatus(w, http.StatusBadRequest)
		return nil, nil, false
	}

	user, err := h.UserService.VerifyCredentials(ctx, clientID, req.login(), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteStatus(w, http.StatusUnauthorized)
			return nil, nil, false
		}
		serverError(ctx, w, "login failed", err)
		return nil, nil, false
	}

	pair, err := h.TokenService.CreateOrUpdateSession(ctx, clientID, user,
		presentedAccessToken(r), presentedRefreshToken(r), true)
	if err != nil {
		serverError(ctx, w, "session creation failed", err)
		return nil, nil, false
	}
	return &user, pair, true
}

// HandleLoginWeb handles POST /tokens/{clientId}/web
//
//	@Summary		Web Login
//	@Description	Verifies credentials and starts a fresh session, placing the token pair in httpOnly cookies.
//	@Tags			Tokens
//	@Accept			json
//	@Produce		json
//	@Param			clientId	path		string					true	"Client ID"
//	@Param			request		body		LoginRequest			true	"Credentials"
//	@Success		200			{object}	domain.User				"profile; tokens set as cookies"
//	@Failure		401			{object}	httpx.StatusResponse	"bad credentials"
//	@Router			/tokens/{clientId}/web [post].
func (h *TokensHandler) HandleLoginWeb(w http.ResponseWriter, r *http.Request) {
	user, pair, ok := h.login(w, r)
	if !ok {
		return
	}
	setTokenCookies(w, pair)
	httpx.WriteJSON(w, http.StatusOK, user)
}

// HandleLoginMobile handles POST /tokens/{clientId}/mobile
//
//	@Summary		Mobile Login
//	@Description	Verifies credentials and starts a fresh session, returning the token pair in the response body.
//	@Tags			Tokens
//	@Accept			json
//	@Produce		json
//	@Param			clientId	path		string					true	"Client ID"
//	@Param			request		body		LoginRequest			true	"Credentials"
//	@Success		200			{object}	MobileLoginResponse
//	@Failure		401			{object}	httpx.StatusResponse	"bad credentials"
//	@Router			/tokens/{clientId}/mobile [post].
func (h *TokensHandler) HandleLoginMobile(w http.ResponseWriter, r *http.Request) {
	user, pair, ok := h.login(w, r)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, MobileLoginResponse{
		User:                 *user,
		AccessToken:          pair.AccessToken,
		AccessTokenValidity:  pair.AccessTokenValidity,
		RefreshToken:         pair.RefreshToken,
		RefreshTokenValidity: pair.RefreshTokenValidity,
	})
}

// HandleValidate handles GET /tokens/{clientId}
//
//	@Summary		Validate Token
//	@Description	Authenticates the presented access token (cookie or bearer) and returns its normalized claims.
//	@Tags			Tokens
//	@Produce		json
//	@Param			clientId	path		string	true	"Client ID"
//	@Success		200			{object}	domain.TokenResult
//	@Failure		401			{object}	httpx.StatusResponse	"missing/invalid/expired/revoked token"
//	@Router			/tokens/{clientId} [get].
func (h *TokensHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.TokenService.ValidateAccessToken(ctx, presentedAccessToken(r), false)
	if err != nil {
		serverError(ctx, w, "token validation failed", err)
		return
	}
	if result == nil {
		httpx.WriteStatus(w, http.StatusUnauthorized)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, result)
}

// HandleRefresh handles POST /tokens/{clientId}/refresh
//
//	@Summary		Refresh Tokens
//	@Description	Rotates the token pair, keeping the session id. A refreshToken in the body takes priority over the cookie, and the new pair is then returned in the body instead of cookies.
//	@Tags			Tokens
//	@Accept			json
//	@Produce		json
//	@Param			clientId	path		string					true	"Client ID"
//	@Param			request		body		RefreshRequest			false	"Optional body refresh token"
//	@Success		200			{object}	RefreshResponse			"pair in body, or cookies set"
//	@Failure		401			{object}	httpx.StatusResponse	"invalid refresh token"
//	@Router			/tokens/{clientId}/refresh [post].
func (h *TokensHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID := r.PathValue("clientId")

	var req RefreshRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	fromBody := req.RefreshToken != ""
	refreshToken := req.RefreshToken
	if !fromBody {
		refreshToken = presentedRefreshToken(r)
	}

	result, err := h.TokenService.ValidateRefreshToken(ctx, refreshToken, false)
	if err != nil {
		serverError(ctx, w, "refresh validation failed", err)
		return
	}
	if result == nil {
		httpx.WriteStatus(w, http.StatusUnauthorized)
		return
	}

	user, err := h.UserService.GetByID(ctx, clientID, result.UserID)
	if err != nil {
		httpx.WriteStatus(w, http.StatusUnauthorized)
		return
	}

	pair, err := h.TokenService.CreateOrUpdateSession(ctx, clientID, user,
		presentedAccessToken(r), refreshToken, false)
	if err != nil {
		serverError(ctx, w, "token rotation failed", err)
		return
	}

	if fromBody {
		httpx.WriteJSON(w, http.StatusOK, RefreshResponse{
			AccessToken:          pair.AccessToken,
			AccessTokenValidity:  pair.AccessTokenValidity,
			RefreshToken:         pair.RefreshToken,
			RefreshTokenValidity: pair.RefreshTokenValidity,
		})
		return
	}
	setTokenCookies(w, pair)
	httpx.WriteStatus(w, http.StatusOK)
}

// HandleLogout handles DELETE /tokens/{clientId}
//
//	@Summary		Logout
//	@Description	Archives the caller's session (full token history to cold storage) and clears the cookies. Always succeeds.
//	@Tags			Tokens
//	@Produce		json
//	@Param			clientId	path		string	true	"Client ID"
//	@Success		200			{object}	httpx.StatusResponse
//	@Router			/tokens/{clientId} [delete].
func (h *TokensHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID := r.PathValue("clientId")

	access, err := h.TokenService.ValidateAccessToken(ctx, presentedAccessToken(r), true)
	if err != nil {
		serverError(ctx, w, "logout validation failed", err)
		return
	}
	refresh, err := h.TokenService.ValidateRefreshToken(ctx, presentedRefreshToken(r), true)
	if err != nil {
		serverError(ctx, w, "logout validation failed", err)
		return
	}

	// Either token identifies the session; with neither there is nothing to
	// archive and logout still succeeds.
	identity := access
	if identity == nil {
		identity = refresh
	}
	if identity != nil {
		keys := service.CurrentKeys{}
		if access != nil {
			keys.AccessRecordKey = access.RecordKey
			keys.AccessIndexKey = access.IndexKey
		}
		if refresh != nil {
			keys.RefreshRecordKey = refresh.RecordKey
			keys.RefreshIndexKey = refresh.IndexKey
		}
		err := h.SessionService.Archive(ctx, clientID, identity.UserID, identity.SessionID, keys)
		if err != nil {
			serverError(ctx, w, "session archival failed", err)
			return
		}
	}

	clearTokenCookies(w)
	httpx.WriteStatus(w, http.StatusOK)
}

// serverError logs the failure and answers 500 without leaking detail.
func serverError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	slogx.FromContext(ctx).Error(msg, "error", err)
	httpx.WriteStatus(w, http.StatusInternalServerError)
}
