package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/authabl/internal/auth/store"
	"github.com/aussiebroadwan/authabl/pkg/httpx"
)

// HealthResponse is the body of both health probes.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
	Store   string `json:"store,omitempty"`
}

// LivezHandler godoc
//
//	@Summary		Liveness Probe
//	@Description	Always answers 200 while the process is up.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Probe
//	@Description	Answers 200 when the store is reachable, 503 otherwise.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, storeStatus, code := "ok", "ok", http.StatusOK
		if err := st.Ping(r.Context()); err != nil {
			status = "degraded"
			storeStatus = "error: " + err.Error()
			code = http.StatusServiceUnavailable
		}
		httpx.WriteJSON(w, code, HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Store:   storeStatus,
		})
	}
}
