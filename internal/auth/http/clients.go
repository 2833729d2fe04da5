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

// ClientsHandler manages the client registry. Guarded by the superadmin
// secret, not per-client keys.
type ClientsHandler struct {
	ClientService *service.ClientService
}

// CreateClientRequest registers a new client. Omitted validity windows fall
// back to the defaults; the id and secret are server-generated.
type CreateClientRequest struct {
	Name                 string   `json:"name"`
	AccessTokenValidity  int64    `json:"accessTokenValidity,omitempty"`
	RefreshTokenValidity int64    `json:"refreshTokenValidity,omitempty"`
	DisableRefreshToken  bool     `json:"disableRefreshToken,omitempty"`
	RedirectURIs         []string `json:"redirectUris,omitempty"`
}

// HandleCreate handles POST /clients
//
//	@Summary		Create Client
//	@Description	Registers a client with a server-generated id and secret. The secret is only returned here.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		SuperadminKey
//	@Param			request	body		CreateClientRequest	true	"Client registration"
//	@Success		201		{object}	domain.Client
//	@Failure		400		{object}	httpx.StatusResponse
//	@Router			/clients [post].
func (h *ClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		httpx.WriteStatus(w, http.StatusBadRequest)
		return
	}

	client, err := h.ClientService.Create(ctx, domain.Client{
		Name:                 strings.TrimSpace(req.Name),
		AccessTokenValidity:  req.AccessTokenValidity,
		RefreshTokenValidity: req.RefreshTokenValidity,
		DisableRefreshToken:  req.DisableRefreshToken,
		RedirectURIs:         req.RedirectURIs,
	})
	if err != nil {
		serverError(ctx, w, "client creation failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, client)
}

// HandleList handles GET /clients
//
//	@Summary		List Clients
//	@Tags			Clients
//	@Produce		json
//	@Security		SuperadminKey
//	@Success		200	{array}	domain.Client
//	@Router			/clients [get].
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clients, err := h.ClientService.List(ctx)
	if err != nil {
		serverError(ctx, w, "client listing failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clients)
}

// HandleGet handles GET /clients/{clientId}
//
//	@Summary		Get Client
//	@Tags			Clients
//	@Produce		json
//	@Security		SuperadminKey
//	@Param			clientId	path		string	true	"Client ID"
//	@Success		200			{object}	domain.Client
//	@Failure		404			{object}	httpx.StatusResponse
//	@Router			/clients/{clientId} [get].
func (h *ClientsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	client, err := h.ClientService.Get(ctx, r.PathValue("clientId"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteStatus(w, http.StatusNotFound)
			return
		}
		serverError(ctx, w, "client lookup failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, client)
}

// HandleDelete handles DELETE /clients/{clientId}
//
//	@Summary		Delete Client
//	@Description	Removes a client registration. Its users' rows are left to their own lifecycles.
//	@Tags			Clients
//	@Produce		json
//	@Security		SuperadminKey
//	@Param			clientId	path		string	true	"Client ID"
//	@Success		200			{object}	httpx.StatusResponse
//	@Router			/clients/{clientId} [delete].
func (h *ClientsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.ClientService.Delete(ctx, r.PathValue("clientId")); err != nil {
		serverError(ctx, w, "client deletion failed", err)
		return
	}
	httpx.WriteStatus(w, http.StatusOK)
}
