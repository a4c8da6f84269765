package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DucHai972/Questionnaire/internal/bench"
	"github.com/DucHai972/Questionnaire/internal/config"
	"github.com/DucHai972/Questionnaire/internal/encoding"
	"github.com/DucHai972/Questionnaire/internal/store"
	"github.com/DucHai972/Questionnaire/internal/task"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sampleRun(id string) *bench.RunSummary {
	started := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	run := &bench.RunSummary{
		ID:         id,
		Dataset:    "stack_overflow",
		Provider:   "simulated",
		Iterations: 1,
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
		Results: []bench.ScoredResult{
			{Task: task.KindAnswerLookup, Encoding: encoding.JSON, Score: 1, Expected: "Answer: x", Actual: "x"},
		},
	}
	run.Tasks, run.EncodingAverages, run.Ranking = bench.Summarize(run.Results)
	return run
}

func testServer(t *testing.T) (*Server, store.Store) {
	t.Helper()
	t.Setenv("QBENCH_DISABLE_AUTH", "true")

	st, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	srv, err := NewServer(&config.Config{}, st)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv, st
}

func doRequest(srv *Server, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	srv, _ := testServer(t)

	w := doRequest(srv, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("body: %s", w.Body.String())
	}
}

func TestListRuns(t *testing.T) {
	srv, st := testServer(t)
	if err := st.SaveRun(context.Background(), sampleRun("run-1")); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	w := doRequest(srv, http.MethodGet, "/api/v1/runs", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d body %s", w.Code, w.Body.String())
	}

	var metas []store.RunMeta
	if err := json.Unmarshal(w.Body.Bytes(), &metas); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(metas) != 1 || metas[0].ID != "run-1" {
		t.Fatalf("list: %+v", metas)
	}

	w = doRequest(srv, http.MethodGet, "/api/v1/runs?dataset=other", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "null" && body != "[]" {
		t.Fatalf("filtered list should be empty: %s", body)
	}

	w = doRequest(srv, http.MethodGet, "/api/v1/runs?limit=bogus", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad limit: got %d", w.Code)
	}
}

func TestGetRun(t *testing.T) {
	srv, st := testServer(t)
	if err := st.SaveRun(context.Background(), sampleRun("run-2")); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	w := doRequest(srv, http.MethodGet, "/api/v1/runs/run-2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d body %s", w.Code, w.Body.String())
	}

	var run bench.RunSummary
	if err := json.Unmarshal(w.Body.Bytes(), &run); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if run.ID != "run-2" || len(run.Results) != 1 {
		t.Fatalf("run: %+v", run)
	}

	w = doRequest(srv, http.MethodGet, "/api/v1/runs/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing run: got %d", w.Code)
	}
}

func TestGetRunReport(t *testing.T) {
	srv, st := testServer(t)
	if err := st.SaveRun(context.Background(), sampleRun("run-3")); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	w := doRequest(srv, http.MethodGet, "/api/v1/runs/run-3/report", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Fatalf("content type: %q", ct)
	}
	if !strings.Contains(w.Body.String(), "# LLM Format Comprehension Benchmark Report") {
		t.Fatalf("report body: %s", w.Body.String())
	}
}

func TestAPIKeyAuth(t *testing.T) {
	t.Setenv("QBENCH_API_KEY", "secret")
	t.Setenv("QBENCH_DISABLE_AUTH", "")

	st, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	defer st.Close()

	srv, err := NewServer(&config.Config{}, st)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	w := doRequest(srv, http.MethodGet, "/api/v1/runs", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no key: got %d", w.Code)
	}

	h := http.Header{}
	h.Set("X-API-Key", "secret")
	w = doRequest(srv, http.MethodGet, "/api/v1/runs", h)
	if w.Code != http.StatusOK {
		t.Fatalf("with key: got %d", w.Code)
	}

	// Health stays open.
	w = doRequest(srv, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("healthz: got %d", w.Code)
	}
}

func TestMissingAuthConfigFails(t *testing.T) {
	t.Setenv("QBENCH_API_KEY", "")
	t.Setenv("QBENCH_DISABLE_AUTH", "")

	st, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	defer st.Close()

	if _, err := NewServer(&config.Config{}, st); err == nil {
		t.Fatalf("missing auth configuration should fail server construction")
	}
}
