// Package devserver implements a local stand-in for the centavo backend
// API. It serves the CLI during offline development and gives the test
// suite a real HTTP server to run the session lifecycle against. State
// lives in memory and is gone when the process exits.
package devserver

import (
	"crypto/rand"
	_ "embed"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-openapi/runtime/middleware"
)

//go:embed openapi.yaml
var openapiSpec []byte

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 30 * 24 * time.Hour
)

// Server holds the in-memory stores and token configuration.
type Server struct {
	accounts   *accountStore
	refresh    *refreshStore
	txs        *txStore
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithAccessTTL sets the access token lifetime declared to clients.
func WithAccessTTL(d time.Duration) Option {
	return func(s *Server) {
		s.accessTTL = d
	}
}

// WithRefreshTTL sets the refresh token lifetime.
func WithRefreshTTL(d time.Duration) Option {
	return func(s *Server) {
		s.refreshTTL = d
	}
}

// WithLogger sets the structured logger. If not set, a default JSON
// logger writing to stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a Server with a fresh random signing secret.
func New(opts ...Option) *Server {
	s := &Server{
		accounts:   newAccountStore(),
		txs:        newTxStore(),
		accessTTL:  defaultAccessTTL,
		refreshTTL: defaultRefreshTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	s.refresh = newRefreshStore(s.refreshTTL)
	s.secret = make([]byte, 32)
	if _, err := rand.Read(s.secret); err != nil {
		panic(err)
	}
	return s
}

// Router returns a chi.Router with all API routes mounted.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})
	r.Handle("/docs*", middleware.SwaggerUI(middleware.SwaggerUIOpts{
		SpecURL: "/openapi.yaml",
		Path:    "docs",
	}, nil))

	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/refresh-token", s.handleRefresh)
	r.Post("/auth/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/auth/me", s.handleMe)
		r.Put("/auth/targets", s.handleTargets)
		r.Put("/auth/profile", s.handleProfile)
		r.Get("/transactions", s.handleListTransactions)
		r.Post("/transactions", s.handleCreateTransaction)
		r.Delete("/transactions/{id}", s.handleDeleteTransaction)
	})

	return r
}
