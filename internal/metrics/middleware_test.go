package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-agent/internal/scoring"
	"github.com/jonathan/resume-agent/internal/types"
)

func newTestMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /notfound", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("POST /error", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func TestMiddleware_RecordsDurationAndCount(t *testing.T) {
	handler := Middleware("/ok", "/notfound", "/error")(newTestMux())

	tests := []struct {
		method string
		path   string
		status string
	}{
		{method: "GET", path: "/ok", status: "200"},
		{method: "GET", path: "/notfound", status: "404"},
		{method: "POST", path: "/error", status: "500"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.path, tc.status))

			req := httptest.NewRequest(tc.method, tc.path, http.NoBody)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.path, tc.status))
			assert.Equal(t, before+1, after)
		})
	}

	assert.Positive(t, testutil.CollectAndCount(httpRequestDuration))
}

func TestMiddleware_UnknownPath(t *testing.T) {
	handler := Middleware("/ok")(newTestMux())

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unknown", "404"))

	for _, path := range []string{"/nope", "/notfound", "/a/b/c"} {
		req := httptest.NewRequest("GET", path, http.NoBody)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unknown", "404"))
	assert.Equal(t, before+3, after)
}

func TestNormalizePath(t *testing.T) {
	known := map[string]bool{"/api/ats-score": true, "/health": true}

	tests := []struct {
		input    string
		expected string
	}{
		{"", "unknown"},
		{"/api/ats-score", "/api/ats-score"},
		{"/health", "/health"},
		{"/api/ats-score/extra", "unknown"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, normalizePath(tc.input, known), tc.input)
	}
}

func TestHandler_ExposesCollectors(t *testing.T) {
	ObserveScore(&types.ScoreResult{Score: 42, Gaps: []string{"Missing: projects"}})

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", http.NoBody))
	require.Equal(t, http.StatusOK, rr.Code)

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "resume_agent_ats_score")
	assert.Contains(t, string(body), `resume_agent_section_gaps_total{section="projects"}`)
}

func TestObserveScore(t *testing.T) {
	result := scoring.Score(types.Resume{}, "")

	before := make(map[string]float64)
	for _, section := range scoring.RequiredSections {
		before[section] = testutil.ToFloat64(sectionGapsTotal.WithLabelValues(section))
	}

	ObserveScore(result)
	ObserveScore(nil)

	for _, section := range scoring.RequiredSections {
		assert.Equal(t, before[section]+1, testutil.ToFloat64(sectionGapsTotal.WithLabelValues(section)), section)
	}
}

func TestObserveEnhancement(t *testing.T) {
	before := testutil.ToFloat64(enhancementChangesTotal.WithLabelValues("skills_deduplicated"))

	ObserveEnhancement([]string{"skills_deduplicated"})
	ObserveEnhancement(nil)

	assert.Equal(t, before+1, testutil.ToFloat64(enhancementChangesTotal.WithLabelValues("skills_deduplicated")))
}
