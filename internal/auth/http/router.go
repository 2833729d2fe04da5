// Package http wires the service layer to the HTTP surface: one handler
// struct per resource, plain ServeMux patterns, and per-route middleware
// chains for client authentication and rate limiting.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/authabl/internal/auth/service"
	"github.com/aussiebroadwan/authabl/internal/auth/store"
	"github.com/aussiebroadwan/authabl/pkg/httpx"
	"github.com/aussiebroadwan/authabl/pkg/slogx"

	_ "github.com/aussiebroadwan/authabl/api/authabl" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	superadminSecret string
	buildVersion     string
	startTime        time.Time
	logger           *slog.Logger

	store          store.Store
	TokenService   *service.TokenService
	SessionService *service.SessionService
	ClientService  *service.ClientService
	UserService    *service.UserService
	CodeService    *service.CodeService
}

func NewRouter(superadminSecret, buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:              http.NewServeMux(),
		superadminSecret: superadminSecret,
		buildVersion:     buildVersion,
		startTime:        time.Now(),
		store:            st,
		logger:           logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerTokens()
	r.registerSessions()
	r.registerClients()
	r.registerUsers()
	r.registerEmails()
	r.registerPasswords()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			authabl API
//	@version		0.1.0
//	@description	Authentication-as-a-service: per-client user registries, credential
//	@description	verification and bearer-token session management. Tokens validate
//	@description	against revocable server-side records, and a session's full token
//	@description	history is archived to cold storage on logout.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/authabl
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	ClientKey
//	@in							header
//	@name						X-AUTHABL-API-KEY
//	@description				Per-client API secret.
//
//	@securityDefinitions.apikey	SuperadminKey
//	@in							header
//	@name						X-AUTHABL-API-KEY
//	@description				Deployment-wide management secret.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerTokens() {
	h := &TokensHandler{
		TokenService:   r.TokenService,
		UserService:    r.UserService,
		SessionService: r.SessionService,
	}
	clientAuth := ClientAuthMiddleware(r.ClientService)

	// Logins carry credentials: strict limit against brute force.
	r.Mux.Handle("POST /tokens/{clientId}/web",
		httpx.Chain(http.HandlerFunc(h.HandleLoginWeb),
			clientAuth,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /tokens/{clientId}/mobile",
		httpx.Chain(http.HandlerFunc(h.HandleLoginMobile),
			clientAuth,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /tokens/{clientId}",
		httpx.Chain(http.HandlerFunc(h.HandleValidate),
			clientAuth,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("POST /tokens/{clientId}/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			clientAuth,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("DELETE /tokens/{clientId}",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			clientAuth,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSessions() {
	h := &SessionsHandler{
		TokenService:   r.TokenService,
		SessionService: r.SessionService,
	}
	clientAuth := ClientAuthMiddleware(r.ClientService)

	r.Mux.Handle("GET /sessions/{clientId}/{userId}",
		httpx.Chain(http.HandlerFunc(h.HandleList), clientAuth))

	// Literal "archive" wins over the {sessionId} wildcard below.
	r.Mux.Handle("GET /sessions/{clientId}/{userId}/archive",
		httpx.Chain(http.HandlerFunc(h.HandleArchiveList), clientAuth))

	r.Mux.Handle("GET /sessions/{clientId}/{userId}/{sessionId}",
		httpx.Chain(http.HandlerFunc(h.HandleGet), clientAuth))

	r.Mux.Handle("DELETE /sessions/{clientId}/{userId}/{sessionId}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete), clientAuth))

	r.Mux.Handle("DELETE /sessions/{clientId}/{userId}",
		httpx.Chain(http.HandlerFunc(h.HandleClear), clientAuth))
}

func (r *Router) registerClients() {
	h := &ClientsHandler{ClientService: r.ClientService}
	superadmin := SuperadminMiddleware(r.superadminSecret)

	r.Mux.Handle("POST /clients",
		httpx.Chain(http.HandlerFunc(h.HandleCreate), superadmin))
	r.Mux.Handle("GET /clients",
		httpx.Chain(http.HandlerFunc(h.HandleList), superadmin))
	r.Mux.Handle("GET /clients/{clientId}",
		httpx.Chain(http.HandlerFunc(h.HandleGet), superadmin))
	r.Mux.Handle("DELETE /clients/{clientId}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete), superadmin))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{
		UserService: r.UserService,
		CodeService: r.CodeService,
	}
	clientAuth := ClientAuthMiddleware(r.ClientService)

	r.Mux.Handle("POST /users/{clientId}",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			clientAuth,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("GET /users/{clientId}",
		httpx.Chain(http.HandlerFunc(h.HandleList), clientAuth))
	r.Mux.Handle("GET /users/{clientId}/{property}/{identifier}",
		httpx.Chain(http.HandlerFunc(h.HandleGet), clientAuth))
	r.Mux.Handle("DELETE /users/{clientId}/{userId}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete), clientAuth))
}

func (r *Router) registerEmails() {
	h := &EmailsHandler{
		TokenService: r.TokenService,
		UserService:  r.UserService,
		CodeService:  r.CodeService,
	}
	clientAuth := ClientAuthMiddleware(r.ClientService)

	r.Mux.Handle("POST /emails/{clientId}/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			clientAuth,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /emails/{clientId}/resend",
		httpx.Chain(http.HandlerFunc(h.HandleResend),
			clientAuth,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerPasswords() {
	h := &PasswordsHandler{
		TokenService: r.TokenService,
		UserService:  r.UserService,
		CodeService:  r.CodeService,
	}
	clientAuth := ClientAuthMiddleware(r.ClientService)

	r.Mux.Handle("POST /passwords/{clientId}/forgot",
		httpx.Chain(http.HandlerFunc(h.HandleForgot),
			clientAuth,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /passwords/{clientId}/reset",
		httpx.Chain(http.HandlerFunc(h.HandleReset),
			clientAuth,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
