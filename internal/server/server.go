// Package server implements the read-only linkpulse HTTP API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pulselab/linkpulse/internal/store"
	"github.com/pulselab/linkpulse/pkg/types"
)

// Server exposes run history and generated reports over HTTP. It never
// mutates pipeline state.
type Server struct {
	store      store.Store
	reportsDir string
	router     chi.Router
	addr       string
	srv        *http.Server
}

// New creates a new HTTP server. reportsDir is the file sink directory
// reports are served from.
func New(cfg types.ServerConfig, st store.Store, reportsDir string) *Server {
	s := &Server{
		store:      st,
		reportsDir: reportsDir,
		addr:       cfg.Addr,
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(APIKeyMiddleware(cfg.APIKey))
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	s.router = r
	s.registerRoutes(r)
	return s
}

// Handler returns the underlying router, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.srv = &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	fmt.Printf("linkpulse server listening on %s\n", s.addr)
	return s.srv.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
