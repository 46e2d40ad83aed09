package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pulselab/linkpulse/internal/store"
	"github.com/pulselab/linkpulse/pkg/types"
)

// ListRuns returns recent run log entries, most recent date first.
// Supports ?limit=N (default 20).
func (h *Handlers) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer", nil)
			return
		}
		limit = n
	}

	entries, err := h.store.ListRunLogs(r.Context(), limit)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to list runs", err)
		return
	}
	if entries == nil {
		entries = []types.RunLogEntry{}
	}

	if err := json.NewEncoder(w).Encode(entries); err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to encode response", err)
	}
}

// GetRun returns the run log entry for one date (YYYY-MM-DD).
func (h *Handlers) GetRun(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	entry, err := h.store.GetRunLog(r.Context(), date)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "no run for date", nil)
			return
		}
		h.writeError(w, http.StatusInternalServerError, "failed to get run", err)
		return
	}

	if err := json.NewEncoder(w).Encode(entry); err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to encode response", err)
	}
}
