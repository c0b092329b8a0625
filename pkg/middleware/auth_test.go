package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func newAuthTestRouter(apiKey string, called *bool) *mux.Router {
	router := mux.NewRouter()
	router.Use(APIKeyAuth(apiKey))
	router.HandleFunc("/api/activites/{id}", func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}).Methods("POST")
	return router
}

func TestAPIKeyAuthRejectsMissingKey(t *testing.T) {
	called := false
	router := newAuthTestRouter("secret", &called)

	req := httptest.NewRequest(http.MethodPost, "/api/activites/a1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called, "handler must not run without a key")
	assert.JSONEq(t, `{"success": false, "message": "Clé API invalide"}`, rec.Body.String())
}

func TestAPIKeyAuthRejectsWrongKey(t *testing.T) {
	called := false
	router := newAuthTestRouter("secret", &called)

	req := httptest.NewRequest(http.MethodPost, "/api/activites/a1", nil)
	req.Header.Set("X-API-Key", "guess")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	// Same envelope as the missing-key case: the response does not reveal
	// whether a key was present.
	assert.JSONEq(t, `{"success": false, "message": "Clé API invalide"}`, rec.Body.String())
}

func TestAPIKeyAuthAcceptsCorrectKey(t *testing.T) {
	called := false
	router := newAuthTestRouter("secret", &called)

	req := httptest.NewRequest(http.MethodPost, "/api/activites/a1", nil)
	req.Header.Set("X-API-Key", "secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
