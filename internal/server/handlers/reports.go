package handlers

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/pulselab/linkpulse/pkg/types"
)

type reportSummary struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// ListReports returns every known report name and whether a generated
// file currently exists for it.
func (h *Handlers) ListReports(w http.ResponseWriter, r *http.Request) {
	out := make([]reportSummary, 0, len(types.ReportNames))
	for _, name := range types.ReportNames {
		available := false
		if h.reportsDir != "" {
			if _, err := os.Stat(filepath.Join(h.reportsDir, name+".json")); err == nil {
				available = true
			}
		}
		out = append(out, reportSummary{Name: name, Available: available})
	}

	if err := json.NewEncoder(w).Encode(out); err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to encode response", err)
	}
}

// GetReport serves the generated JSON for one report. The name must be a
// known report name; anything else is a 404, which also keeps path
// traversal out.
func (h *Handlers) GetReport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !knownReport(name) {
		h.writeError(w, http.StatusNotFound, "unknown report", nil)
		return
	}
	if h.reportsDir == "" {
		h.writeError(w, http.StatusNotFound, "no file report sink configured", nil)
		return
	}

	data, err := os.ReadFile(filepath.Join(h.reportsDir, name+".json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			h.writeError(w, http.StatusNotFound, "report not generated yet", nil)
			return
		}
		h.writeError(w, http.StatusInternalServerError, "failed to read report", err)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func knownReport(name string) bool {
	for _, n := range types.ReportNames {
		if n == name {
			return true
		}
	}
	return false
}
