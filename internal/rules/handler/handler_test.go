package handler

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imexspec/internal/rules"
	"imexspec/pkg/testutil"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	r := chi.NewRouter()
	engine := rules.NewEngine(rules.NewInMemoryStore(), slog.New(slog.DiscardHandler))
	New(engine, slog.New(slog.DiscardHandler)).Register(r)
	return r
}

func TestHandleEvaluate(t *testing.T) {
	router := newTestRouter(t)

	t.Run("evaluates a configuration", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/rules/evaluate", map[string]any{
			"valve_type": "ESFERA",
			"values": map[string]any{
				"diametro":         "8",
				"classe_pressao":   "600",
				"tipo_extremidade": "FLANGEADO_RF",
				"passagem":         "PLENA",
				"tipo_acionamento": "MANUAL",
			},
		})
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		result := testutil.UnmarshalResponse[rules.Result](t, rr)
		assert.True(t, result.IsValid)

		var hidden []string
		for _, f := range result.AffectedFields {
			if f.Action == rules.ActionHide {
				hidden = append(hidden, f.Field)
			}
		}
		assert.Contains(t, hidden, "torque_atuador", "manual actuation hides actuator torque")
	})

	t.Run("missing valve type is a bad request", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/rules/evaluate", map[string]any{
			"values": map[string]any{},
		})
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusBadRequest)
		testutil.AssertErrorCode(t, rr, "bad_request")
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		req := testutil.NewRequestWithBody(t, http.MethodPost, "/rules/evaluate", "{not json")
		rr := testutil.DoRequest(router, req)
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
