package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/authabl/internal/auth/service"
	"github.com/aussiebroadwan/authabl/pkg/httpx"
)

// PasswordsHandler runs the forgot/reset password flow.
type PasswordsHandler struct {
	TokenService *service.TokenService
	UserService  *service.UserService
	CodeService  *service.CodeService
}

// ForgotPasswordRequest asks for a reset code.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest consumes a reset code and sets a new password.
type ResetPasswordRequest struct {
	Email    string `json:"email"`
	Code     string `json:"code"`
	Password string `json:"password"`
}

// HandleForgot handles POST /passwords/{clientId}/forgot
//
//	@Summary		Forgot Password
//	@Description	Mints a reset code and returns it for the client application to deliver. Unknown addresses answer 200 with no code, so the endpoint does not confirm account existence.
//	@Tags			Passwords
//	@Accept			json
//	@Produce		json
//	@Param			clientId	path		string					true	"Client ID"
//	@Param			request		body		ForgotPasswordRequest	true	"Address"
//	@Success		200			{object}	CodeResponse
//	@Router			/passwords/{clientId}/forgot [post].
func (h *PasswordsHandler) HandleForgot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID := r.PathValue("clientId")

	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		httpx.WriteStatus(w, http.StatusBadRequest)
		return
	}

	user, err := h.UserService.GetByEmail(ctx, clientID, req.Email)
	if err != nil {
		// Same answer as success, minus the code.
		httpx.WriteJSON(w, http.StatusOK, CodeResponse{})
		return
	}

	code, err := h.CodeService.IssueForgotPasswordCode(ctx, clientID, user.ID)
	if err != nil {
		serverError(ctx, w, "reset code issuance failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, CodeResponse{Code: code})
}

// HandleReset handles POST /passwords/{clientId}/reset
//
//	@Summary		Reset Password
//	@Description	Consumes the reset code, replaces the password, archives every old session and starts a brand-new one (cookies set).
//	@Tags			Passwords
//	@Accept			json
//	@Produce		json
//	@Param			clientId	path		string					true	"Client ID"
//	@Param			request		body		ResetPasswordRequest	true	"Address, code and new password"
//	@Success		200			{object}	domain.User
//	@Failure		404			{object}	httpx.StatusResponse	"unknown address"
//	@Failure		422			{object}	httpx.StatusResponse	"wrong or expired code"
//	@Router			/passwords/{clientId}/reset [post].
func (h *PasswordsHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID := r.PathValue("clientId")

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Code == "" || req.Password == "" {
		httpx.WriteStatus(w, http.StatusBadRequest)
		return
	}

	user, err := h.UserService.GetByEmail(ctx, clientID, req.Email)
	if err != nil {
		httpx.WriteStatus(w, http.StatusNotFound)
		return
	}

	if err := h.CodeService.ResetPassword(ctx, clientID, user.ID, req.Code, req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidCode) {
			httpx.WriteStatus(w, http.StatusUnprocessableEntity)
			return
		}
		serverError(ctx, w, "password reset failed", err)
		return
	}

	// Old sessions are archived; start a clean one for the caller.
	pair, err := h.TokenService.CreateOrUpdateSession(ctx, clientID, user, "", "", true)
	if err != nil {
		serverError(ctx, w, "session creation failed", err)
		return
	}
	setTokenCookies(w, pair)
	httpx.WriteJSON(w, http.StatusOK, user)
}
