// Package httpapi exposes the service boundary: health, readiness, metrics,
// and the on-demand simulation endpoints. It marshals reports produced by the
// sim entry points; no model logic lives here.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sentinel-lews/risk-engine/internal/config"
	"github.com/sentinel-lews/risk-engine/internal/domain"
	"github.com/sentinel-lews/risk-engine/internal/sim"
)

// maxAPICycles caps API-triggered simulation runs; unbounded runs belong to
// the background loop, not a request handler.
const maxAPICycles = 500

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the HTTP surface over one loaded grid.
type Server struct {
	httpServer *http.Server
	grid       *domain.Grid
	cfg        *config.Config
	logger     *slog.Logger
}

// NewServer creates an HTTP server with health, metrics, and simulation
// routes.
func NewServer(grid *domain.Grid, cfg *config.Config, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		grid:   grid,
		cfg:    cfg,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/backtest", s.handleBacktest)
	mux.HandleFunc("POST /v1/simulate", s.handleSimulate)
	mux.HandleFunc("POST /v1/demo", s.handleDemo)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) handleBacktest(w http.ResponseWriter, r *http.Request) {
	report := sim.RunBacktest(s.grid, sim.BacktestOptions{StormHours: s.cfg.StormHours})
	writeReport(w, report.Status, report)
}

// simulateRequest is the optional JSON body of POST /v1/simulate.
type simulateRequest struct {
	Cycles        int     `json:"cycles"`
	Seed          uint64  `json:"seed"`
	RiskThreshold float64 `json:"risk_threshold"`
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	req := simulateRequest{Cycles: s.cfg.MaxCycles, Seed: s.cfg.SimSeed, RiskThreshold: s.cfg.RiskThreshold}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}
	if req.Cycles <= 0 || req.Cycles > maxAPICycles {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "cycles must be between 1 and 500",
		})
		return
	}

	// Bounded runs execute back to back: no pacing interval in API mode.
	report := sim.RunLiveSimulation(r.Context(), s.grid, sim.LiveOptions{
		MaxCycles:     req.Cycles,
		Seed:          req.Seed,
		RiskThreshold: req.RiskThreshold,
		StormHours:    s.cfg.StormHours,
		Logger:        s.logger,
	})
	writeReport(w, report.Status, report)
}

func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	report := sim.RunQuickDemo(s.grid, sim.DemoOptions{RiskThreshold: s.cfg.RiskThreshold})
	writeReport(w, report.Status, report)
}

// writeReport maps the report status to the HTTP code: entry points never
// raise, so an Error status is the only failure signal they emit.
func writeReport(w http.ResponseWriter, status string, report any) {
	code := http.StatusOK
	if status != sim.StatusSuccess {
		code = http.StatusUnprocessableEntity
	}
	writeJSON(w, code, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
