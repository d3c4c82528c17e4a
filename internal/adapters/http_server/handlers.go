package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"upahan/internal/app"
	"upahan/internal/domain"
)

// Reporter is what the handlers need from the report service. The snapshot
// contract is total: no error return, zero-valued report on failure.
type Reporter interface {
	BarangayReport(ctx context.Context, barangay string) domain.AnalyticsSnapshot
	Barangays(ctx context.Context) ([]string, error)
}

type Handlers struct{ R Reporter }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/barangays", h.listBarangays)
	s.mux.Get("/v1/barangays/{barangay}/analytics", h.getAnalytics)
	s.mux.Get("/v1/barangays/{barangay}/analytics/export", h.exportAnalytics)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func (h *Handlers) getAnalytics(w http.ResponseWriter, r *http.Request) {
	barangay := strings.TrimSpace(chi.URLParam(r, "barangay"))
	if barangay == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid barangay", "barangay must not be blank")
		return
	}

	snap := h.R.BarangayReport(r.Context(), barangay)

	etag, body := calcETagAndBody(snap)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write analytics body")
	}
}

func (h *Handlers) exportAnalytics(w http.ResponseWriter, r *http.Request) {
	barangay := strings.TrimSpace(chi.URLParam(r, "barangay"))
	if barangay == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid barangay", "barangay must not be blank")
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = app.FormatJSON
	}

	var contentType string
	switch format {
	case app.FormatJSON:
		contentType = "application/json"
	case app.FormatCSV:
		contentType = "text/csv"
	case app.FormatText:
		contentType = "text/plain; charset=utf-8"
	default:
		writeProblem(w, http.StatusBadRequest, "Invalid format", "format must be one of json, csv, text")
		return
	}

	snap := h.R.BarangayReport(r.Context(), barangay)
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if err := app.ExportSnapshot(w, format, snap); err != nil {
		log.Error().Err(err).Str("format", format).Msg("snapshot export failed")
	}
}

func (h *Handlers) listBarangays(w http.ResponseWriter, r *http.Request) {
	names, err := h.R.Barangays(r.Context())
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Store unavailable", "could not list barangays")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]any{"items": names}); err != nil {
		log.Error().Err(err).Msg("failed to write barangays body")
	}
}
