package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imexspec/internal/catalog"
	"imexspec/internal/imex"
	"imexspec/internal/norms"
	"imexspec/internal/publication"
	"imexspec/internal/speccfg"
	"imexspec/pkg/testutil"
)

type openGate struct{}

func (openGate) WritesAllowed() bool { return true }

type closedGate struct{}

func (closedGate) WritesAllowed() bool { return false }

func newTestRouter(t *testing.T, gate speccfg.HealthGate) chi.Router {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)

	encoder, err := imex.NewEncoder(context.Background(), catalog.NewInMemoryStore())
	require.NoError(t, err)
	validator := publication.NewValidator(norms.NewInMemoryStore(), nil, logger, nil)
	svc := speccfg.NewService(speccfg.NewInMemoryStore(), gate, validator, encoder, nil, logger)

	r := chi.NewRouter()
	New(svc, logger).Register(r)
	return r
}

func completeBody() map[string]any {
	return map[string]any{
		"valve_type":            "ESFERA",
		"service_type":          "PIPELINE",
		"construction_standard": "ABNT_NBR_15827",
		"diameter_nps":          "8",
		"pressure_class":        "600",
		"end_type":              "FLANGEADO",
		"flange_face":           "RF",
		"actuation_type":        "MANUAL",
		"body_material":         "ASTM A216 WCB",
		"obturator_material":    "F316",
		"seat_material":         "PTFE",
		"stem_material":         "F316",
	}
}

func createDraft(t *testing.T, router chi.Router) speccfg.Draft {
	t.Helper()
	rr := testutil.DoRequest(router, httptest.NewRequest(http.MethodPost, "/specs", nil))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	return *testutil.UnmarshalResponse[speccfg.Draft](t, rr)
}

func TestCreateAndGet(t *testing.T) {
	router := newTestRouter(t, openGate{})

	d := createDraft(t, router)
	assert.Equal(t, speccfg.StatusIncomplete, d.Status)
	assert.NotEmpty(t, d.ID)

	rr := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/specs/"+d.ID, nil))
	testutil.AssertStatus(t, rr, http.StatusOK)
	got := testutil.UnmarshalResponse[speccfg.Draft](t, rr)
	assert.Equal(t, d.ID, got.ID)

	rr = testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/specs/unknown", nil))
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestCreateBlockedByHealthGate(t *testing.T) {
	router := newTestRouter(t, closedGate{})

	rr := testutil.DoRequest(router, httptest.NewRequest(http.MethodPost, "/specs", nil))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestSaveAndList(t *testing.T) {
	router := newTestRouter(t, openGate{})
	d := createDraft(t, router)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/specs/"+d.ID, completeBody())
	rr := testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusOK)
	saved := testutil.UnmarshalResponse[speccfg.Draft](t, rr)
	assert.Equal(t, speccfg.StatusDraft, saved.Status)
	assert.True(t, saved.IsComplete)

	rr = testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/specs?status=DRAFT", nil))
	testutil.AssertStatus(t, rr, http.StatusOK)
	list := testutil.UnmarshalResponse[[]speccfg.Draft](t, rr)
	require.Len(t, *list, 1)
}

func TestSubmitApprovePublish(t *testing.T) {
	router := newTestRouter(t, openGate{})
	d := createDraft(t, router)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/specs/"+d.ID, completeBody())
	testutil.AssertStatus(t, testutil.DoRequest(router, req), http.StatusOK)

	rr := testutil.DoRequest(router, httptest.NewRequest(http.MethodPost, "/specs/"+d.ID+"/submit", nil))
	testutil.AssertStatus(t, rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[submitResponse](t, rr)
	assert.Equal(t, speccfg.StatusSubmitted, resp.Draft.Status)
	assert.True(t, resp.Validation.CanPublish)
	assert.NotEmpty(t, resp.Draft.SpecCode)

	rr = testutil.DoRequest(router, httptest.NewRequest(http.MethodPost, "/specs/"+d.ID+"/approve", nil))
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.DoRequest(router, httptest.NewRequest(http.MethodPost, "/specs/"+d.ID+"/publish", nil))
	testutil.AssertStatus(t, rr, http.StatusOK)
	published := testutil.UnmarshalResponse[speccfg.Draft](t, rr)
	assert.Equal(t, speccfg.StatusPublished, published.Status)
}

func TestSubmitIncompleteIsConflict(t *testing.T) {
	router := newTestRouter(t, openGate{})
	d := createDraft(t, router)

	rr := testutil.DoRequest(router, httptest.NewRequest(http.MethodPost, "/specs/"+d.ID+"/submit", nil))
	testutil.AssertStatus(t, rr, http.StatusConflict)
}

func TestRejectRequiresReason(t *testing.T) {
	router := newTestRouter(t, openGate{})
	d := createDraft(t, router)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/specs/"+d.ID, completeBody())
	testutil.AssertStatus(t, testutil.DoRequest(router, req), http.StatusOK)
	rr := testutil.DoRequest(router, httptest.NewRequest(http.MethodPost, "/specs/"+d.ID+"/submit", nil))
	testutil.AssertStatus(t, rr, http.StatusOK)

	req = testutil.NewJSONRequest(t, http.MethodPost, "/specs/"+d.ID+"/reject", map[string]any{"reason": ""})
	testutil.AssertStatus(t, testutil.DoRequest(router, req), http.StatusBadRequest)

	req = testutil.NewJSONRequest(t, http.MethodPost, "/specs/"+d.ID+"/reject",
		map[string]any{"reason": "classe de pressão incompatível"})
	rr = testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusOK)
	rejected := testutil.UnmarshalResponse[speccfg.Draft](t, rr)
	assert.Equal(t, speccfg.StatusRejected, rejected.Status)
}
