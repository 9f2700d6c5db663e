package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinel-lews/risk-engine/internal/adapter/httpapi"
	"github.com/sentinel-lews/risk-engine/internal/config"
	"github.com/sentinel-lews/risk-engine/internal/domain"
	"github.com/sentinel-lews/risk-engine/internal/sim"
)

type stubChecker struct {
	err error
}

func (s stubChecker) CheckReadiness(context.Context) error { return s.err }

func apiGrid(withHistory bool) *domain.Grid {
	g := &domain.Grid{}
	for i := 0; i < 8; i++ {
		g.Lat = append(g.Lat, 31.05+float64(i)*0.005)
		g.Lon = append(g.Lon, 77.10+float64(i)*0.005)
		g.Elevation = append(g.Elevation, 2000)
		g.Slope = append(g.Slope, 38)
		g.Soil.Cohesion = append(g.Soil.Cohesion, 8)
		g.Soil.FrictionAngle = append(g.Soil.FrictionAngle, 28)
		g.Soil.UnitWeight = append(g.Soil.UnitWeight, 19)
		g.Soil.Depth = append(g.Soil.Depth, 2.5)
		g.Soil.Ksat = append(g.Soil.Ksat, 1e-4)
	}
	if withHistory {
		g.History = map[string][]float64{
			"2023-06-01": make([]float64, 8),
			"2023-07-01": make([]float64, 8),
		}
	}
	return g
}

func newTestServer(t *testing.T, grid *domain.Grid, ready error) *httpapi.Server {
	t.Helper()
	cfg := &config.Config{
		HTTPAddr:      ":0",
		MaxCycles:     3,
		RiskThreshold: 0.75,
		StormHours:    6,
		SimSeed:       1,
	}
	return httpapi.NewServer(grid, cfg, stubChecker{err: ready}, slog.Default())
}

func doRequest(s *httpapi.Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t, apiGrid(false), nil)

	rec := doRequest(s, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestServer_Readiness(t *testing.T) {
	ready := newTestServer(t, apiGrid(false), nil)
	notReady := newTestServer(t, apiGrid(false), errors.New("no cycle completed yet"))

	assert.Equal(t, http.StatusOK, doRequest(ready, http.MethodGet, "/readyz", "").Code)

	rec := doRequest(notReady, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "no cycle completed yet")
}

func TestServer_Demo(t *testing.T) {
	s := newTestServer(t, apiGrid(false), nil)

	rec := doRequest(s, http.MethodPost, "/v1/demo", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var report sim.DemoReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, sim.StatusSuccess, report.Status)
	assert.NotEmpty(t, report.Log)
}

func TestServer_SimulateBoundedRun(t *testing.T) {
	s := newTestServer(t, apiGrid(false), nil)

	rec := doRequest(s, http.MethodPost, "/v1/simulate", `{"cycles": 2, "seed": 7}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var report sim.LiveReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, sim.StatusSuccess, report.Status)
	assert.Len(t, report.Cycles, 2)
}

func TestServer_SimulateDefaultsFromConfig(t *testing.T) {
	s := newTestServer(t, apiGrid(false), nil)

	rec := doRequest(s, http.MethodPost, "/v1/simulate", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var report sim.LiveReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Len(t, report.Cycles, 3, "empty body runs the configured cycle count")
}

func TestServer_SimulateRejectsBadCycleCounts(t *testing.T) {
	s := newTestServer(t, apiGrid(false), nil)

	for _, body := range []string{`{"cycles": 0}`, `{"cycles": -3}`, `{"cycles": 50000}`} {
		rec := doRequest(s, http.MethodPost, "/v1/simulate", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestServer_SimulateRejectsMalformedBody(t *testing.T) {
	s := newTestServer(t, apiGrid(false), nil)

	rec := doRequest(s, http.MethodPost, "/v1/simulate", `{"cycles": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Backtest(t *testing.T) {
	s := newTestServer(t, apiGrid(true), nil)

	rec := doRequest(s, http.MethodPost, "/v1/backtest", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var report sim.BacktestReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, sim.StatusSuccess, report.Status)
	assert.Len(t, report.Results, 2)
}

func TestServer_BacktestWithoutHistoryIs422(t *testing.T) {
	s := newTestServer(t, apiGrid(false), nil)

	rec := doRequest(s, http.MethodPost, "/v1/backtest", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var report sim.BacktestReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, sim.StatusError, report.Status)
}
