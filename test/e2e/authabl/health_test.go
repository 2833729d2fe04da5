package authabl_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHealthProbes checks both probes against the running stack.
func TestHealthProbes(t *testing.T) {
	baseURL := setupStack(t)
	api := newAPIClient(t, baseURL, "")

	var live struct {
		Status string `json:"status"`
	}
	status := api.do(http.MethodGet, "/livez", nil, &live)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", live.Status)

	var ready struct {
		Status string `json:"status"`
		Store  string `json:"store"`
	}
	status = api.do(http.MethodGet, "/readyz", nil, &ready)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Store)
}
