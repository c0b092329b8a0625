package handlers

import (
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// PagesHandler renders the static HTML views and the error pages.
type PagesHandler struct {
	tmpl *template.Template
}

// NewPagesHandler parses every template under dir.
func NewPagesHandler(dir string) (*PagesHandler, error) {
	tmpl, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	return &PagesHandler{tmpl: tmpl}, nil
}

// Page returns a handler rendering the named template.
func (h *PagesHandler) Page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := h.tmpl.ExecuteTemplate(w, name, nil); err != nil {
			log.WithError(err).WithField("template", name).Error("Failed to render page")
			h.renderError(w, http.StatusInternalServerError, "500.html")
		}
	}
}

// NotFoundHandler serves HTML for page routes and the JSON envelope for API
// routes.
func (h *PagesHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		respondError(w, http.StatusNotFound, "Route introuvable")
		return
	}
	h.renderError(w, http.StatusNotFound, "404.html")
}

func (h *PagesHandler) renderError(w http.ResponseWriter, status int, name string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tmpl.ExecuteTemplate(w, name, nil); err != nil {
		log.WithError(err).WithField("template", name).Error("Failed to render error page")
	}
}
