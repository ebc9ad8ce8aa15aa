package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pips/internal/compiler"
	"github.com/aretw0/pips/internal/presentation/graph"
	"github.com/aretw0/pips/pkg/adapters/memory"
	"github.com/aretw0/pips/pkg/domain"
)

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	handler := NewHandler(
		compiler.NewParser(),
		&graph.Renderer{},
		prometheus.NewRegistry(),
		append([]Option{WithVersion("test")}, opts...)...,
	)
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestServer_Health(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestServer_Info(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/info")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "pips", body["name"])
	assert.Equal(t, "test", body["version"])
}

func TestServer_Eval(t *testing.T) {
	ts := newTestServer(t)

	payload := bytes.NewBufferString(`{"expression": "2D6"}`)
	resp, err := http.Post(ts.URL+"/eval", "application/json", payload)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body EvalResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "2D6", body.Expression)
	assert.Equal(t, 7.0, body.ExpectedValue)
	assert.Equal(t, 36.0, body.TotalWeight)
	assert.Equal(t, 11, body.Distribution.Len())
	assert.Equal(t, 6.0, body.Distribution.Weight(7))
}

func TestServer_Eval_Normalized(t *testing.T) {
	ts := newTestServer(t)

	payload := bytes.NewBufferString(`{"expression": "1D4", "normalize": 1.0}`)
	resp, err := http.Post(ts.URL+"/eval", "application/json", payload)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body EvalResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.InDelta(t, 1.0, body.TotalWeight, 1e-9)
	assert.InDelta(t, 0.25, body.Distribution.Weight(3), 1e-9)
}

func TestServer_Eval_NonPositiveNormalize(t *testing.T) {
	ts := newTestServer(t)

	for _, payload := range []string{
		`{"expression": "1D6", "normalize": 0}`,
		`{"expression": "1D6", "normalize": -2}`,
	} {
		resp, err := http.Post(ts.URL+"/eval", "application/json", bytes.NewBufferString(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Contains(t, body["error"], "normalize")
	}
}

func TestServer_Eval_OverflowingCount(t *testing.T) {
	ts := newTestServer(t)

	payload := bytes.NewBufferString(`{"expression": "99999999999999999999D6"}`)
	resp, err := http.Post(ts.URL+"/eval", "application/json", payload)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Eval_BadExpression(t *testing.T) {
	ts := newTestServer(t)

	payload := bytes.NewBufferString(`{"expression": "D0"}`)
	resp, err := http.Post(ts.URL+"/eval", "application/json", payload)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "D0")
}

func TestServer_Roll(t *testing.T) {
	ts := newTestServer(t)

	payload := bytes.NewBufferString(`{"expression": "1D6", "count": 5, "seed": 42}`)
	resp, err := http.Post(ts.URL+"/roll", "application/json", payload)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body RollResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Results, 5)
	for _, v := range body.Results {
		assert.GreaterOrEqual(t, v, 1.0)
		assert.LessOrEqual(t, v, 6.0)
	}
}

func TestServer_Roll_CountBounds(t *testing.T) {
	ts := newTestServer(t)

	payload := bytes.NewBufferString(`{"expression": "1D6", "count": 100000}`)
	resp, err := http.Post(ts.URL+"/roll", "application/json", payload)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Chart(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/chart?expression=1D4")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "xychart-beta")
	assert.Contains(t, buf.String(), `title "1D4"`)
}

func TestServer_Chart_MissingExpression(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/chart")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Library(t *testing.T) {
	lib := memory.NewLibrary(
		domain.Entry{ID: "attack", Expression: "1D20+4"},
		domain.Entry{ID: "fireball", Expression: "8D6", Description: "Save for half."},
	)
	ts := newTestServer(t, WithLibrary(lib))

	resp, err := http.Get(ts.URL + "/library")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []domain.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "attack", entries[0].ID)
	assert.Equal(t, "fireball", entries[1].ID)
}

func TestServer_LibraryEntry(t *testing.T) {
	lib := memory.NewLibrary(domain.Entry{ID: "fireball", Expression: "8D6"})
	ts := newTestServer(t, WithLibrary(lib))

	resp, err := http.Get(ts.URL + "/library/fireball")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entry domain.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entry))
	assert.Equal(t, "8D6", entry.Expression)

	missing, err := http.Get(ts.URL + "/library/missing")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestServer_Library_NotConfigured(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/library", "/library/anything"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestServer_OpenAPISpec(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/openapi.yaml")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Pips API")
}

func TestServer_Metrics(t *testing.T) {
	ts := newTestServer(t)

	// Generate some traffic first.
	payload := bytes.NewBufferString(`{"expression": "1D6"}`)
	resp, err := http.Post(ts.URL+"/eval", "application/json", payload)
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "pips_http_requests_total")
	assert.Contains(t, buf.String(), "pips_eval_duration_seconds")
}
