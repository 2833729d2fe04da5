package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/authabl/internal/auth/domain"
	"github.com/aussiebroadwan/authabl/internal/auth/service"
	"github.com/aussiebroadwan/authabl/internal/auth/store"
	"github.com/aussiebroadwan/authabl/pkg/httpx"
)

// UsersHandler manages a client's user registry.
type UsersHandler struct {
	UserService *service.UserService
	CodeService *service.CodeService
}

// RegisterRequest creates a user. At least one of email/username is required.
type RegisterRequest struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// RegisterResponse returns the new profile plus the email-verification code
// the client application is expected to deliver. Code delivery is the client
// application's responsibility, not this service's.
type RegisterResponse struct {
	User             domain.User `json:"user"`
	VerificationCode string      `json:"verificationCode,omitempty"`
}

// HandleRegister handles POST /users/{clientId}
//
//	@Summary		Register User
//	@Description	Creates a user under this client. When an email is given, a verification code is issued and returned for the client application to deliver.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			clientId	path		string				true	"Client ID"
//	@Param			request		body		RegisterRequest		true	"Registration"
//	@Success		201			{object}	RegisterResponse
//	@Failure		400			{object}	httpx.StatusResponse
//	@Failure		409			{object}	httpx.StatusResponse	"email or username taken"
//	@Router			/users/{clientId} [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID := r.PathValue("clientId")

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteStatus(w, http.StatusBadRequest)
		return
	}
	if req.Password == "" || (strings.TrimSpace(req.Email) == "" && strings.TrimSpace(req.Username) == "") {
		httpx.WriteStatus(w, http.StatusBadRequest)
		return
	}

	user, err := h.UserService.Register(ctx, clientID, domain.User{
		Email:    req.Email,
		Username: req.Username,
		Role:     req.Role,
	}, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) || errors.Is(err, service.ErrUsernameTaken) {
			httpx.WriteStatus(w, http.StatusConflict)
			return
		}
		serverError(ctx, w, "user registration failed", err)
		return
	}

	resp := RegisterResponse{User: user}
	if user.Email != "" {
		code, err := h.CodeService.IssueVerificationCode(ctx, clientID, user.ID)
		if err != nil {
			serverError(ctx, w, "verification code issuance failed", err)
			return
		}
		resp.VerificationCode = code
	}
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

// HandleList handles GET /users/{clientId}
//
//	@Summary		List Users
//	@Tags			Users
//	@Produce		json
//	@Param			clientId	path	string	true	"Client ID"
//	@Success		200			{array}	domain.User
//	@Router			/users/{clientId} [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.UserService.List(ctx, r.PathValue("clientId"))
	if err != nil {
		serverError(ctx, w, "user listing failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, users)
}

// HandleGet handles GET /users/{clientId}/{property}/{identifier}
//
//	@Summary		Get User
//	@Description	Looks a user up by id, email or username.
//	@Tags			Users
//	@Produce		json
//	@Param			clientId	path		string	true	"Client ID"
//	@Param			property	path		string	true	"One of id, email, username"
//	@Param			identifier	path		string	true	"Lookup value"
//	@Success		200			{object}	domain.User
//	@Failure		400			{object}	httpx.StatusResponse	"unknown property"
//	@Failure		404			{object}	httpx.StatusResponse
//	@Router			/users/{clientId}/{property}/{identifier} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID := r.PathValue("clientId")
	identifier := r.PathValue("identifier")

	var user domain.User
	var err error
	switch r.PathValue("property") {
	case "id":
		user, err = h.UserService.GetByID(ctx, clientID, identifier)
	case "email":
		user, err = h.UserService.GetByEmail(ctx, clientID, identifier)
	case "username":
		user, err = h.UserService.GetByUsername(ctx, clientID, identifier)
	default:
		httpx.WriteStatus(w, http.StatusBadRequest)
		return
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteStatus(w, http.StatusNotFound)
			return
		}
		serverError(ctx, w, "user lookup failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, user)
}

// HandleDelete handles DELETE /users/{clientId}/{userId}
//
//	@Summary		Delete User
//	@Description	Archives every session the user has, then removes the account and its lookup indexes.
//	@Tags			Users
//	@Produce		json
//	@Param			clientId	path		string	true	"Client ID"
//	@Param			userId		path		string	true	"User ID"
//	@Success		200			{object}	httpx.StatusResponse
//	@Router			/users/{clientId}/{userId} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.UserService.Delete(ctx, r.PathValue("clientId"), r.PathValue("userId"))
	if err != nil {
		serverError(ctx, w, "user deletion failed", err)
		return
	}
	httpx.WriteStatus(w, http.StatusOK)
}
