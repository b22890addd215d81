package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imexspec/internal/catalog"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	h := New(catalog.NewInMemoryStore(), slog.New(slog.DiscardHandler))
	h.Register(r)
	return r
}

func TestHandleListCategory(t *testing.T) {
	router := newTestRouter(t)

	t.Run("lists pressure classes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/catalog/pressure_classes", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Category string         `json:"category"`
			Items    []catalog.Item `json:"items"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "pressure_classes", body.Category)
		assert.Len(t, body.Items, 7)
	})

	t.Run("unknown category is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/catalog/nonsense", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not_found", body["error"])
	})
}

func TestHandleListCategories(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Categories, "valve_models")
	assert.Contains(t, body.Categories, "diameter_options")
}
