package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"cleanroom/internal/pipeline"
	"cleanroom/internal/resolution"
	"cleanroom/internal/results"
	"cleanroom/pkg/testutil"
)

func newPipelineRouter(t *testing.T) (http.Handler, *results.InMemoryStore) {
	t.Helper()

	store := results.NewInMemoryStore()
	engine := resolution.NewEngine(resolution.DefaultConfig(), nil, nil, nil, nil)
	runner := pipeline.NewRunner(pipeline.DefaultConfig(), engine, store, results.NewInMemoryHistory(), nil, nil)

	r := chi.NewRouter()
	New(runner, store, slog.Default()).Register(r)
	return r, store
}

func validPayload() map[string]any {
	return map[string]any{
		"columns": []string{"employee_id", "first_name", "last_name", "email", "department"},
		"rows": []map[string]any{
			{
				"employee_id": "E-1",
				"first_name":  "Dana",
				"last_name":   "Whitfield",
				"email":       "dana@example.com",
				"department":  "Engineering",
				"phone":       "5551234567",
				"salary":      75000.0,
				"age":         34.0,
				"hire_date":   "2019-06-01",
			},
		},
	}
}

func TestHandleRun(t *testing.T) {
	router, _ := newPipelineRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/runs", validPayload()))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 running batch, got %d: %s", rec.Code, rec.Body.String())
	}

	report := testutil.UnmarshalResponse[pipeline.RunReport](t, rec)
	if report.RunID == "" {
		t.Fatalf("expected run_id in response")
	}
	if report.Metrics.TotalRows != 1 || report.Metrics.Accepted != 1 {
		t.Fatalf("expected one accepted row, got %+v", report.Metrics)
	}
}

func TestHandleRunEmptyRows(t *testing.T) {
	router, _ := newPipelineRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/runs", map[string]any{"rows": []any{}}))

	testutil.AssertErrorCode(t, rec, http.StatusBadRequest, "bad_request")
}

func TestHandleRunInvalidBody(t *testing.T) {
	router, _ := newPipelineRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/runs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	testutil.AssertErrorCode(t, rec, http.StatusBadRequest, "bad_request")
}

func TestHandleRunSchemaFailure(t *testing.T) {
	router, _ := newPipelineRouter(t)

	payload := validPayload()
	payload["columns"] = []string{"employee_id"}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/runs", payload))

	testutil.AssertErrorCode(t, rec, http.StatusBadRequest, "schema_error")
}

func TestHandleLatest(t *testing.T) {
	router, _ := newPipelineRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/latest", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before any run, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/runs", validPayload()))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 running batch, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/latest", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for latest, got %d", rec.Code)
	}

	latest := testutil.UnmarshalResponse[latestResponse](t, rec)
	if latest.RunID == "" || latest.Cleaned != 1 {
		t.Fatalf("unexpected latest response: %+v", latest)
	}
}
