package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/labmath/labmath-site/internal/models"
	"github.com/labmath/labmath-site/internal/services"
	log "github.com/sirupsen/logrus"
)

// ContentHandler serves the four content collections.
type ContentHandler struct {
	Service *services.ContentService
}

func NewContentHandler(service *services.ContentService) *ContentHandler {
	return &ContentHandler{Service: service}
}

// ListActivitesHandler returns published activities, newest first.
func (h *ContentHandler) ListActivitesHandler(w http.ResponseWriter, r *http.Request) {
	data := h.Service.ListActivites(r.Context())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(data),
		"data":    data,
	})
}

// GetActiviteHandler returns a single activity by sync_id.
func (h *ContentHandler) GetActiviteHandler(w http.ResponseWriter, r *http.Request) {
	syncID := mux.Vars(r)["id"]
	activite, err := h.Service.GetActivite(r.Context(), syncID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Activité introuvable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    activite,
	})
}

// UpsertActiviteHandler inserts or replaces an activity. The sync_id path
// variable is optional; absent means the server generates one.
func (h *ContentHandler) UpsertActiviteHandler(w http.ResponseWriter, r *http.Request) {
	var in models.Activite
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.WithError(err).Warn("Failed to decode activity payload")
		respondError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}
	defer r.Body.Close()

	id, err := h.Service.UpsertActivite(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		log.WithError(err).Error("Failed to upsert activity")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      id,
		"message": "Activité enregistrée",
	})
}

// DeleteActiviteHandler removes an activity by sync_id.
func (h *ContentHandler) DeleteActiviteHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteActivite(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, services.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Activité introuvable")
		return
	}
	if err != nil {
		log.WithError(err).Error("Failed to delete activity")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Activité supprimée",
	})
}

// ListRealisationsHandler returns all achievements, newest first.
func (h *ContentHandler) ListRealisationsHandler(w http.ResponseWriter, r *http.Request) {
	data := h.Service.ListRealisations(r.Context())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(data),
		"data":    data,
	})
}

// UpsertRealisationHandler inserts or replaces an achievement.
func (h *ContentHandler) UpsertRealisationHandler(w http.ResponseWriter, r *http.Request) {
	var in models.Realisation
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.WithError(err).Warn("Failed to decode achievement payload")
		respondError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}
	defer r.Body.Close()

	id, err := h.Service.UpsertRealisation(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		log.WithError(err).Error("Failed to upsert achievement")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      id,
		"message": "Réalisation enregistrée",
	})
}

// DeleteRealisationHandler removes an achievement by sync_id.
func (h *ContentHandler) DeleteRealisationHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteRealisation(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, services.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Réalisation introuvable")
		return
	}
	if err != nil {
		log.WithError(err).Error("Failed to delete achievement")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Réalisation supprimée",
	})
}

// ListAnnoncesHandler returns announcements currently inside their visibility
// window, newest first.
func (h *ContentHandler) ListAnnoncesHandler(w http.ResponseWriter, r *http.Request) {
	data := h.Service.ListAnnonces(r.Context(), time.Now())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(data),
		"data":    data,
	})
}

// UpsertAnnonceHandler inserts or replaces an announcement.
func (h *ContentHandler) UpsertAnnonceHandler(w http.ResponseWriter, r *http.Request) {
	var in models.Annonce
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.WithError(err).Warn("Failed to decode announcement payload")
		respondError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}
	defer r.Body.Close()

	id, err := h.Service.UpsertAnnonce(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		log.WithError(err).Error("Failed to upsert announcement")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      id,
		"message": "Annonce enregistrée",
	})
}

// DeleteAnnonceHandler removes an announcement by sync_id.
func (h *ContentHandler) DeleteAnnonceHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteAnnonce(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, services.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Annonce introuvable")
		return
	}
	if err != nil {
		log.WithError(err).Error("Failed to delete announcement")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Annonce supprimée",
	})
}

// ListOffresHandler returns active offers whose deadline has not passed,
// newest first.
func (h *ContentHandler) ListOffresHandler(w http.ResponseWriter, r *http.Request) {
	data := h.Service.ListOffres(r.Context(), time.Now())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(data),
		"data":    data,
	})
}

// UpsertOffreHandler inserts or replaces an offer.
func (h *ContentHandler) UpsertOffreHandler(w http.ResponseWriter, r *http.Request) {
	var in models.Offre
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.WithError(err).Warn("Failed to decode offer payload")
		respondError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}
	defer r.Body.Close()

	id, err := h.Service.UpsertOffre(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		log.WithError(err).Error("Failed to upsert offer")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      id,
		"message": "Offre enregistrée",
	})
}

// DeleteOffreHandler removes an offer by sync_id.
func (h *ContentHandler) DeleteOffreHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteOffre(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, services.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Offre introuvable")
		return
	}
	if err != nil {
		log.WithError(err).Error("Failed to delete offer")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Offre supprimée",
	})
}
