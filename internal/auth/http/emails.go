package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/authabl/internal/auth/service"
	"github.com/aussiebroadwan/authabl/pkg/httpx"
)

// EmailsHandler runs the email-verification code flow. Code delivery is the
// client application's job; this service only mints and checks codes.
type EmailsHandler struct {
	TokenService *service.TokenService
	UserService  *service.UserService
	CodeService  *service.CodeService
}

// VerifyEmailRequest confirms ownership of an address.
type VerifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// ResendCodeRequest asks for a fresh verification code.
type ResendCodeRequest struct {
	Email string `json:"email"`
}

// CodeResponse hands a minted one-time code back to the client application
// for delivery.
type CodeResponse struct {
	Code string `json:"code"`
}

// HandleVerify handles POST /emails/{clientId}/verify
//
//	@Summary		Verify Email
//	@Description	Consumes the verification code, marks the address verified and starts a brand-new session (cookies set).
//	@Tags			Emails
//	@Accept			json
//	@Produce		json
//	@Param			clientId	path		string				true	"Client ID"
//	@Param			request		body		VerifyEmailRequest	true	"Address and code"
//	@Success		200			{object}	domain.User
//	@Failure		404			{object}	httpx.StatusResponse	"unknown address"
//	@Failure		422			{object}	httpx.StatusResponse	"wrong or expired code"
//	@Router			/emails/{clientId}/verify [post].
func (h *EmailsHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID := r.PathValue("clientId")

	var req VerifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Code == "" {
		httpx.WriteStatus(w, http.StatusBadRequest)
		return
	}

	user, err := h.UserService.GetByEmail(ctx, clientID, req.Email)
	if err != nil {
		httpx.WriteStatus(w, http.StatusNotFound)
		return
	}

	if err := h.CodeService.VerifyEmail(ctx, clientID, user.ID, req.Code); err != nil {
		if errors.Is(err, service.ErrInvalidCode) {
			httpx.WriteStatus(w, http.StatusUnprocessableEntity)
			return
		}
		serverError(ctx, w, "email verification failed", err)
		return
	}
	user.EmailVerified = true

	// Verification doubles as a login: sever any prior session and hand the
	// browser a fresh pair.
	pair, err := h.TokenService.CreateOrUpdateSession(ctx, clientID, user,
		presentedAccessToken(r), presentedRefreshToken(r), true)
	if err != nil {
		serverError(ctx, w, "session creation failed", err)
		return
	}
	setTokenCookies(w, pair)
	httpx.WriteJSON(w, http.StatusOK, user)
}

// HandleResend handles POST /emails/{clientId}/resend
//
//	@Summary		Resend Verification Code
//	@Description	Replaces any pending verification code with a fresh one and returns it for delivery.
//	@Tags			Emails
//	@Accept			json
//	@Produce		json
//	@Param			clientId	path		string				true	"Client ID"
//	@Param			request		body		ResendCodeRequest	true	"Address"
//	@Success		200			{object}	CodeResponse
//	@Failure		404			{object}	httpx.StatusResponse	"unknown address"
//	@Router			/emails/{clientId}/resend [post].
func (h *EmailsHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID := r.PathValue("clientId")

	var req ResendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		httpx.WriteStatus(w, http.StatusBadRequest)
		return
	}

	user, err := h.UserService.GetByEmail(ctx, clientID, req.Email)
	if err != nil {
		httpx.WriteStatus(w, http.StatusNotFound)
		return
	}

	code, err := h.CodeService.IssueVerificationCode(ctx, clientID, user.ID)
	if err != nil {
		serverError(ctx, w, "verification code issuance failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, CodeResponse{Code: code})
}
