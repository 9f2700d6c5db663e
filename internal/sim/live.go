package sim

import (
	"context"
	"log/slog"
	"time"

	"github.com/sentinel-lews/risk-engine/internal/domain"
	"github.com/sentinel-lews/risk-engine/internal/hydro"
	"github.com/sentinel-lews/risk-engine/internal/observability"
	"github.com/sentinel-lews/risk-engine/internal/pipeline"
	"github.com/sentinel-lews/risk-engine/internal/risk"
)

// LiveOptions tune a live simulation run. Zero values select the defaults.
type LiveOptions struct {
	// MaxCycles bounds the run; <= 0 runs until the context is cancelled.
	MaxCycles int
	// Interval paces cycles for human observation. API-triggered bounded
	// runs leave it zero and execute back to back.
	Interval time.Duration
	// Seed keys the synthetic sensor source; identical seeds reproduce
	// identical runs.
	Seed uint64
	// Stations overrides the default gauge sites.
	Stations []Station
	// Source overrides the synthetic source entirely (fixtures, replays).
	Source pipeline.SensorSource
	// RiskThreshold overrides the live hotspot cutoff.
	RiskThreshold float64
	// StormHours overrides the Green-Ampt infiltration window.
	StormHours float64
	// Sink, if set, receives each cycle's hotspot alerts.
	Sink pipeline.AlertSink
	// OnCycle, if set, streams every completed cycle result.
	OnCycle func(domain.CycleResult)

	Logger  *slog.Logger
	Metrics *observability.Metrics
}

// LiveReport is the external-facing result of RunLiveSimulation. Cycle
// entries carry summary fields only; the per-cell FoS and risk vectors are
// delivered through OnCycle and dropped here to keep reports bounded.
type LiveReport struct {
	Status string               `json:"status"`
	Log    string               `json:"logs"`
	Cycles []domain.CycleResult `json:"cycles,omitempty"`
}

// RunLiveSimulation generates synthetic station readings per cycle and runs
// the full filter → interpolate → track → stability → risk pipeline,
// persisting saturation across cycles. The run halts on context cancellation,
// on reaching MaxCycles, or on a computation failure (reported, not raised).
func RunLiveSimulation(ctx context.Context, grid *domain.Grid, opts LiveOptions) *LiveReport {
	log := &runLog{}
	report := &LiveReport{Status: StatusSuccess}

	log.printf("=== Sentinel-LEWS LIVE SIMULATION ===")
	log.printf("Mode: Rolling %.0f-Hour Forecast", stormHoursOrDefault(opts.StormHours))

	if grid == nil {
		log.printf("Dataset missing.")
		report.Status = StatusError
		report.Log = log.String()
		return report
	}
	if err := grid.Validate(); err != nil {
		log.printf("Dataset invalid: %v", err)
		report.Status = StatusError
		report.Log = log.String()
		return report
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = observability.NewUnregisteredMetrics()
	}

	source := opts.Source
	if source == nil {
		source = NewSyntheticSource(opts.Stations, opts.Seed)
	}

	gen := risk.NewGenerator()
	if opts.RiskThreshold > 0 {
		gen.Threshold = opts.RiskThreshold
	}

	tracker := hydro.NewTracker(grid.Len(), hydro.DefaultInitialSaturation)
	engine := pipeline.New(grid, tracker, source, opts.Sink, gen, logger, metrics)
	engine.SetStormDuration(opts.StormHours)

	err := engine.Run(ctx, opts.MaxCycles, opts.Interval, func(r domain.CycleResult) {
		log.printf("")
		log.printf("[CYCLE %d]", r.Cycle)
		log.printf("  Sensors: %d -> %d valid", r.SensorsTotal, r.SensorsValid)
		log.printf("  Max Rainfall: %.1f mm/hr", r.MaxRainfall)
		log.printf("  Avg Saturation: %.1f%%", r.AvgSaturation*100)
		log.printf("  Unstable Area: %.2f%%", r.UnstableFraction*100)
		if r.AlertTriggered {
			log.printf("  ALERT: Widespread slope instability detected")
		}
		if opts.OnCycle != nil {
			opts.OnCycle(r)
		}
		r.FoS = nil
		r.Risk = nil
		report.Cycles = append(report.Cycles, r)
	})
	if err != nil {
		log.printf("Error during simulation: %v", err)
		report.Status = StatusError
	} else if opts.MaxCycles > 0 {
		log.printf("")
		log.printf("[STOP] Reached limit of %d cycles.", opts.MaxCycles)
	}

	report.Log = log.String()
	return report
}

func stormHoursOrDefault(h float64) float64 {
	if h > 0 {
		return h
	}
	return 6
}
