package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/lmorazan/corresponsal-backend/internal/auth"
	"github.com/lmorazan/corresponsal-backend/internal/banking"
	"github.com/lmorazan/corresponsal-backend/internal/config"
	"github.com/lmorazan/corresponsal-backend/internal/http/handlers"
	"github.com/lmorazan/corresponsal-backend/internal/middleware"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// Routes assembles the full handler chain. Exposed separately from New
// so tests can mount it on an httptest server.
func Routes(cfg config.Config, svc *banking.Service, tokens *auth.TokenManager) http.Handler {
	router := mux.NewRouter()

	handlers.NewHealthHandler(time.Now()).Register(router)

	api := router.PathPrefix("/api").Subrouter()
	handlers.NewAuthHandler(tokens, &cfg).Register(api)

	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(middleware.RequireAuth(tokens))
	handlers.NewBankingHandler(svc).Register(protected)

	chain := middleware.SecurityHeaders(router)
	chain = middleware.CORS(cfg.CORSOrigins, chain)
	chain = middleware.Logging(chain)
	return middleware.RequestID(chain)
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, svc *banking.Service, tokens *auth.TokenManager) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Routes(cfg, svc, tokens),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
