package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labmath/labmath-site/internal/models"
	"github.com/labmath/labmath-site/internal/services"
	"github.com/labmath/labmath-site/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	svc := services.NewContentService(storage.NewStore(filepath.Join(t.TempDir(), "data.json")))
	h := NewStatusHandler(svc)

	rec := httptest.NewRecorder()
	h.HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status    string `json:"status"`
		Service   string `json:"service"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "labmath-website", resp.Service)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestStatusPageHandlerCounts(t *testing.T) {
	svc := services.NewContentService(storage.NewStore(filepath.Join(t.TempDir(), "data.json")))
	_, err := svc.UpsertAnnonce(context.Background(), "n1", models.Annonce{Titre: "Rentrée"})
	require.NoError(t, err)

	h := NewStatusHandler(svc)
	rec := httptest.NewRecorder()
	h.StatusPageHandler(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success    bool   `json:"success"`
		Annonces   int    `json:"annonces"`
		Activites  int    `json:"activites"`
		LastUpdate string `json:"last_update"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Annonces)
	assert.Equal(t, 0, resp.Activites)
	assert.NotEmpty(t, resp.LastUpdate)
}
