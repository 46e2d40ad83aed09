package server

import (
	"github.com/go-chi/chi/v5"

	"github.com/pulselab/linkpulse/internal/server/handlers"
)

func (s *Server) registerRoutes(r chi.Router) {
	h := handlers.New(s.store, s.reportsDir)

	r.Route("/api", func(r chi.Router) {
		// Health
		r.Get("/health", h.Health)

		// Reports
		r.Get("/reports", h.ListReports)
		r.Get("/reports/{name}", h.GetReport)

		// Run history
		r.Get("/runs", h.ListRuns)
		r.Get("/runs/{date}", h.GetRun)
	})
}
