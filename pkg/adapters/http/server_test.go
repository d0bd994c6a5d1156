package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/hepworks/nllfit/pkg/adapters/http"
	"github.com/hepworks/nllfit/pkg/adapters/memory"
	"github.com/hepworks/nllfit/pkg/adapters/simplex"
	"github.com/hepworks/nllfit/pkg/domain"
	"github.com/hepworks/nllfit/pkg/pdf"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	obs := domain.Observable{Name: "m", Lo: 5.20, Hi: 5.30}
	m0 := domain.NewBoundedParameter("m0", 5.291, 5.20, 5.30)
	k := domain.NewBoundedParameter("k", -30, -80, -1)
	model := pdf.NewArgus(obs, m0, k, pdf.WithSeed(606))

	data, err := model.Generate(300)
	require.NoError(t, err)

	handler, err := httpadapter.NewHandler(httpadapter.Config{
		Model:     model,
		Data:      data,
		Minimizer: simplex.New(simplex.WithMaxSteps(200)),
		Store:     memory.New(),
	})
	require.NoError(t, err)

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGenerate(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/generate", map[string]any{"events": 50})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Values []float64 `json:"values"`
	}
	decodeJSON(t, resp, &out)
	assert.Len(t, out.Values, 50)
	for _, v := range out.Values {
		assert.GreaterOrEqual(t, v, 5.20)
		assert.LessOrEqual(t, v, 5.30)
	}
}

func TestGenerateRejectsNonPositive(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/generate", map[string]any{"events": 0})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFitPersistsResult(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/fit", map[string]any{
		"policy": map[string]any{"name": "wall", "print_errors": 10},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		ID     string            `json:"id"`
		Result *domain.FitResult `json:"result"`
	}
	decodeJSON(t, resp, &out)
	require.NotNil(t, out.Result)
	require.NotEmpty(t, out.ID)
	assert.Equal(t, "wall", out.Result.Policy)
	assert.Contains(t, out.Result.Params, "m0")
	assert.Contains(t, out.Result.Params, "k")

	loaded, err := http.Get(ts.URL + "/api/results/" + out.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, loaded.StatusCode)
	var stored domain.FitResult
	decodeJSON(t, loaded, &stored)
	assert.Equal(t, out.Result.NLL, stored.NLL)

	list, err := http.Get(ts.URL + "/api/results")
	require.NoError(t, err)
	var ids struct {
		IDs []string `json:"ids"`
	}
	decodeJSON(t, list, &ids)
	assert.Contains(t, ids.IDs, out.ID)
}

func TestFitRejectsUnknownPolicy(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/fit", map[string]any{
		"policy": map[string]any{"name": "retry"},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestScan(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/scan", map[string]any{
		"parameter": "m0",
		"lo":        5.288,
		"hi":        5.293,
		"points":    11,
		"shift":     true,
		"policy":    map[string]any{"name": "wall", "print_errors": -1},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Curve domain.Curve `json:"curve"`
	}
	decodeJSON(t, resp, &out)
	require.Len(t, out.Curve, 11)
	assert.Equal(t, 0.0, out.Curve.MinY())
}

func TestScanUnknownParameter(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/scan", map[string]any{
		"parameter": "width", "lo": 0, "hi": 1, "points": 5,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestResultNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/results/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
