package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labmath/labmath-site/internal/services"
	"github.com/labmath/labmath-site/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContactTestHandler(t *testing.T) *ContactHandler {
	t.Helper()
	fallback := storage.NewContactFileStore(filepath.Join(t.TempDir(), "contacts.json"))
	svc := services.NewContactService(nil, fallback, nil, "")
	return NewContactHandler(svc)
}

func postContact(t *testing.T, h *ContactHandler, payload map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.SubmitContactHandler(rec, req)
	return rec
}

func TestSubmitContactRejectsBadEmail(t *testing.T) {
	h := newContactTestHandler(t)

	rec := postContact(t, h, map[string]string{
		"name": "A", "email": "not-an-email", "subject": "s", "message": "m",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success": false, "message": "Adresse email invalide"}`, rec.Body.String())
}

func TestSubmitContactRejectsMissingField(t *testing.T) {
	h := newContactTestHandler(t)

	rec := postContact(t, h, map[string]string{
		"name": "A", "email": "a@example.org", "subject": "s",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitContactSucceedsWithFallbackID(t *testing.T) {
	h := newContactTestHandler(t)

	rec := postContact(t, h, map[string]string{
		"name": "A", "email": "a@example.org", "subject": "s", "message": "m",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success   bool   `json:"success"`
		ContactID *int64 `json:"contact_id"`
		Timestamp string `json:"timestamp"`
		Persisted bool   `json:"persisted"`
		Notified  bool   `json:"notified"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.ContactID)
	assert.Equal(t, int64(1), *resp.ContactID)
	assert.NotEmpty(t, resp.Timestamp)
	assert.True(t, resp.Persisted)
	assert.False(t, resp.Notified)
}

func TestListContactsNewestFirst(t *testing.T) {
	h := newContactTestHandler(t)

	for _, name := range []string{"first", "second"} {
		rec := postContact(t, h, map[string]string{
			"name": name, "email": "a@example.org", "subject": "s", "message": "m",
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	rec := httptest.NewRecorder()
	h.ListContactsHandler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
		Data    []struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "second", resp.Data[0].Name)
}
