package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labmath/labmath-site/internal/services"
	log "github.com/sirupsen/logrus"
)

// contactListLimit caps the admin contact listing.
const contactListLimit = 100

// ContactHandler serves the public contact form and the privileged listing.
type ContactHandler struct {
	Service *services.ContactService
}

func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{Service: service}
}

// SubmitContactHandler accepts a contact form submission. Validation failures
// are the only errors surfaced to the caller; persistence and notification
// outcomes are reported in the persisted/notified fields.
func (h *ContactHandler) SubmitContactHandler(w http.ResponseWriter, r *http.Request) {
	var req services.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode contact payload")
		respondError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}
	defer r.Body.Close()

	result, err := h.Service.Submit(r.Context(), req)
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		respondError(w, http.StatusBadRequest, vErr.Message)
		return
	}
	if err != nil {
		log.WithError(err).Error("Contact submission failed")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"message":    "Votre message a bien été reçu",
		"contact_id": result.ContactID,
		"timestamp":  result.Timestamp,
		"persisted":  result.Persisted,
		"notified":   result.Notified,
	})
}

// ListContactsHandler returns the most recent submissions, newest first.
func (h *ContactHandler) ListContactsHandler(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Service.ListContacts(r.Context(), contactListLimit)
	if err != nil {
		log.WithError(err).Error("Failed to list contacts")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(contacts),
		"data":    contacts,
	})
}
