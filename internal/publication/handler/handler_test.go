package handler

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"imexspec/internal/norms"
	"imexspec/internal/publication"
	"imexspec/pkg/testutil"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	r := chi.NewRouter()
	validator := publication.NewValidator(norms.NewInMemoryStore(), nil, slog.New(slog.DiscardHandler), nil)
	New(validator, slog.New(slog.DiscardHandler)).Register(r)
	return r
}

func TestHandleValidate(t *testing.T) {
	router := newTestRouter(t)

	t.Run("blocks an incomplete configuration", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/publication/validate", map[string]any{
			"configuration": map[string]any{
				"valve_type":   "ESFERA",
				"primary_norm": "ABNT_NBR_15827",
				"diameter_nps": "8",
			},
		})
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		result := testutil.UnmarshalResponse[publication.Result](t, rr)
		assert.False(t, result.CanPublish)
		assert.NotEmpty(t, result.BlockedBy)
	})

	t.Run("approves a complete configuration", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/publication/validate", map[string]any{
			"configuration": map[string]any{
				"valve_type":         "ESFERA",
				"service_type":       "PIPELINE",
				"primary_norm":       "ABNT_NBR_15827",
				"diameter_nps":       "8",
				"pressure_class":     "600",
				"end_type":           "FLANGEADO",
				"flange_face":        "RF",
				"body_material":      "ASTM_A216_WCB",
				"obturator_material": "ASTM_A182_F316",
				"seat_material":      "PTFE",
				"stem_material":      "ASTM_A182_F316",
				"actuation_type":     "MANUAL",
			},
		})
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		result := testutil.UnmarshalResponse[publication.Result](t, rr)
		assert.True(t, result.CanPublish)
		assert.Equal(t, 100.0, result.CoveragePercent)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		req := testutil.NewRequestWithBody(t, http.MethodPost, "/publication/validate", "{not json")
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})
}
