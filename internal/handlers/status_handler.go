package handlers

import (
	"net/http"
	"time"

	"github.com/labmath/labmath-site/internal/services"
)

// StatusHandler serves the health and status probes.
type StatusHandler struct {
	Service *services.ContentService
}

func NewStatusHandler(service *services.ContentService) *StatusHandler {
	return &StatusHandler{Service: service}
}

// HealthHandler is the liveness probe.
func (h *StatusHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"service":   "labmath-website",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// StatusPageHandler reports per-collection counts and the document's last
// update timestamp.
func (h *StatusHandler) StatusPageHandler(w http.ResponseWriter, r *http.Request) {
	counts := h.Service.Counts(r.Context())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"activites":    counts.Activites,
		"realisations": counts.Realisations,
		"annonces":     counts.Annonces,
		"offres":       counts.Offres,
		"last_update":  counts.LastUpdate,
	})
}
