package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/aussiebroadwan/authabl/internal/auth/service"
	"github.com/aussiebroadwan/authabl/pkg/httpx"
)

// APIKeyHeader carries the per-client secret on every core endpoint.
const APIKeyHeader = "X-AUTHABL-API-KEY"

// ClientAuthMiddleware rejects requests whose API key does not match the
// secret registered for the {clientId} in the path. Runs before every core
// handler; by the time a handler executes, the client is authenticated.
func ClientAuthMiddleware(clients *service.ClientService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := r.PathValue("clientId")
			secret := r.Header.Get(APIKeyHeader)
			if clientID == "" || secret == "" {
				httpx.WriteStatus(w, http.StatusUnauthorized)
				return
			}
			if err := clients.VerifySecret(r.Context(), clientID, secret); err != nil {
				httpx.WriteStatus(w, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SuperadminMiddleware guards the client registry itself: the deployment-wide
// secret, not any per-client one, opens these endpoints.
func SuperadminMiddleware(secret string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get(APIKeyHeader)
			if secret == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
				httpx.WriteStatus(w, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
