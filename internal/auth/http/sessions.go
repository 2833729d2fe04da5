package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/authabl/internal/auth/service"
	"github.com/aussiebroadwan/authabl/internal/auth/store"
	"github.com/aussiebroadwan/authabl/pkg/httpx"
)

// SessionsHandler exposes the live-session and archive views.
type SessionsHandler struct {
	TokenService   *service.TokenService
	SessionService *service.SessionService
}

// HandleList handles GET /sessions/{clientId}/{userId}
//
//	@Summary		List Sessions
//	@Description	Lists a user's live sessions, flagging the one the caller is currently authenticated under.
//	@Tags			Sessions
//	@Produce		json
//	@Param			clientId	path	string	true	"Client ID"
//	@Param			userId		path	string	true	"User ID"
//	@Success		200			{array}	domain.SessionInfo
//	@Router			/sessions/{clientId}/{userId} [get].
func (h *SessionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID := r.PathValue("clientId")
	userID := r.PathValue("userId")

	currentSessionID := ""
	if result, err := h.TokenService.ValidateAccessToken(ctx, presentedAccessToken(r), false); err == nil && result != nil {
		currentSessionID = result.SessionID
	}

	sessions, err := h.SessionService.ListSessions(ctx, clientID, userID, currentSessionID)
	if err != nil {
		serverError(ctx, w, "session listing failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sessions)
}

// HandleGet handles GET /sessions/{clientId}/{userId}/{sessionId}
//
//	@Summary		Session Detail
//	@Description	Returns one live session with its full token history, rotated-away and revoked tokens included.
//	@Tags			Sessions
//	@Produce		json
//	@Param			clientId	path		string	true	"Client ID"
//	@Param			userId		path		string	true	"User ID"
//	@Param			sessionId	path		string	true	"Session ID"
//	@Success		200			{object}	domain.SessionDetail
//	@Failure		404			{object}	httpx.StatusResponse	"session not found"
//	@Router			/sessions/{clientId}/{userId}/{sessionId} [get].
func (h *SessionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	detail, err := h.SessionService.GetSession(ctx,
		r.PathValue("clientId"), r.PathValue("userId"), r.PathValue("sessionId"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteStatus(w, http.StatusNotFound)
			return
		}
		serverError(ctx, w, "session lookup failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, detail)
}

// HandleDelete handles DELETE /sessions/{clientId}/{userId}/{sessionId}
//
//	@Summary		Archive Session
//	@Description	Archives one session: its full token history is written to cold storage and every live row is deleted.
//	@Tags			Sessions
//	@Produce		json
//	@Param			clientId	path		string	true	"Client ID"
//	@Param			userId		path		string	true	"User ID"
//	@Param			sessionId	path		string	true	"Session ID"
//	@Success		200			{object}	httpx.StatusResponse
//	@Router			/sessions/{clientId}/{userId}/{sessionId} [delete].
func (h *SessionsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.SessionService.Archive(ctx,
		r.PathValue("clientId"), r.PathValue("userId"), r.PathValue("sessionId"),
		service.CurrentKeys{})
	if err != nil {
		serverError(ctx, w, "session archival failed", err)
		return
	}
	httpx.WriteStatus(w, http.StatusOK)
}

// HandleClear handles DELETE /sessions/{clientId}/{userId}
//
//	@Summary		Archive All Sessions
//	@Description	Archives every live session the user has.
//	@Tags			Sessions
//	@Produce		json
//	@Param			clientId	path		string	true	"Client ID"
//	@Param			userId		path		string	true	"User ID"
//	@Success		200			{object}	httpx.StatusResponse
//	@Router			/sessions/{clientId}/{userId} [delete].
func (h *SessionsHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.SessionService.ClearSessions(ctx, r.PathValue("clientId"), r.PathValue("userId"))
	if err != nil {
		serverError(ctx, w, "session clearing failed", err)
		return
	}
	httpx.WriteStatus(w, http.StatusOK)
}

// HandleArchiveList handles GET /sessions/{clientId}/{userId}/archive
//
//	@Summary		List Archived Sessions
//	@Description	Reads a user's archived session documents back out of cold storage.
//	@Tags			Sessions
//	@Produce		json
//	@Param			clientId	path	string	true	"Client ID"
//	@Param			userId		path	string	true	"User ID"
//	@Success		200			{array}	domain.ArchivedSession
//	@Router			/sessions/{clientId}/{userId}/archive [get].
func (h *SessionsHandler) HandleArchiveList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	archived, err := h.SessionService.ListArchivedSessions(ctx,
		r.PathValue("clientId"), r.PathValue("userId"))
	if err != nil {
		serverError(ctx, w, "archive listing failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, archived)
}
