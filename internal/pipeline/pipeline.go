// Package pipeline orchestrates one simulation cycle end to end:
// filter → interpolate → saturation tracking → stability → risk.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/sentinel-lews/risk-engine/internal/domain"
	"github.com/sentinel-lews/risk-engine/internal/fusion"
	"github.com/sentinel-lews/risk-engine/internal/hydro"
	"github.com/sentinel-lews/risk-engine/internal/observability"
	"github.com/sentinel-lews/risk-engine/internal/risk"
	"github.com/sentinel-lews/risk-engine/internal/stability"
)

// SensorSource supplies the raw station readings for a cycle. Sources may be
// synthetic (the live simulator) or replayed fixtures; randomness lives here,
// never inside the pipeline itself.
type SensorSource interface {
	Readings(cycle int) []domain.StationReading
}

// AlertSink receives the hotspot alerts of a cycle. A failing sink is logged
// and skipped; it never fails the cycle.
type AlertSink interface {
	PublishAlerts(ctx context.Context, alerts []domain.HotspotAlert) error
}

// Engine runs the strict per-cycle stage pipeline over one grid. The stages
// within a cycle are sequential: the saturation tracker must finish before
// the stability model reads its state. The engine holds the only reference
// to the tracker, which is the only cross-cycle mutable state.
type Engine struct {
	grid    *domain.Grid
	tracker *hydro.Tracker
	source  SensorSource
	sink    AlertSink
	gen     risk.Generator
	logger  *slog.Logger
	metrics *observability.Metrics

	stormHours float64
	cycle      int
	ready      atomic.Bool
}

// New creates an Engine. sink may be nil to disable alert publishing.
func New(grid *domain.Grid, tracker *hydro.Tracker, source SensorSource, sink AlertSink,
	gen risk.Generator, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{
		grid:       grid,
		tracker:    tracker,
		source:     source,
		sink:       sink,
		gen:        gen,
		logger:     logger,
		metrics:    metrics,
		stormHours: stability.DefaultStormDuration,
	}
}

// SetStormDuration overrides the Green-Ampt infiltration window in hours.
func (e *Engine) SetStormDuration(hours float64) {
	if hours > 0 {
		e.stormHours = hours
	}
}

// CheckReadiness returns nil once at least one cycle has completed.
func (e *Engine) CheckReadiness(_ context.Context) error {
	if !e.ready.Load() {
		return errors.New("engine has not completed a cycle yet")
	}
	return nil
}

// RunCycle computes one full cycle from the previous cycle's saturation
// state. Numeric edge cases are absorbed by the stage-level clamps and
// floors; anything that still escapes is recovered here and surfaced as a
// computation failure so a degenerate dataset cannot corrupt state silently.
func (e *Engine) RunCycle(ctx context.Context) (result domain.CycleResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.metrics.ComputeFailures.Inc()
			err = fmt.Errorf("computation failure in cycle %d: %v", e.cycle, r)
		}
	}()

	start := time.Now()
	e.cycle++

	raw := e.source.Readings(e.cycle)
	clean := fusion.FilterAnomalies(raw)
	e.metrics.ReadingsReceived.Add(float64(len(raw)))
	e.metrics.ReadingsRejected.Add(float64(len(raw) - len(clean)))

	field := fusion.Interpolate(clean, e.grid.Lat, e.grid.Lon)

	e.tracker.Advance(field)

	maxRain := field.Max()
	fos := stability.ComputeFoS(e.grid, e.tracker.State(), maxRain, e.stormHours)

	assessment := e.gen.Evaluate(fos, e.grid.Lat, e.grid.Lon)

	result = domain.CycleResult{
		Cycle:            e.cycle,
		FoS:              fos,
		Risk:             assessment.Risk,
		SensorsTotal:     len(raw),
		SensorsValid:     len(clean),
		MaxRainfall:      maxRain,
		AvgSaturation:    e.tracker.Mean(),
		UnstableFraction: assessment.UnstableFraction,
		AlertTriggered:   assessment.AlertTriggered,
		Hotspots:         assessment.Hotspots,
		ComputedAt:       domain.Clock().Now(),
	}

	e.observe(result, fos)
	e.publish(ctx, result)

	e.metrics.CycleDuration.Observe(time.Since(start).Seconds())
	e.ready.Store(true)
	return result, nil
}

// Run executes cycles until maxCycles is reached (maxCycles <= 0 means
// unbounded) or the context is cancelled. interval paces cycles for
// human-paced observation; zero runs them back to back, which is how
// API-triggered bounded runs execute. emit, if non-nil, receives every
// completed result.
func (e *Engine) Run(ctx context.Context, maxCycles int, interval time.Duration, emit func(domain.CycleResult)) error {
	e.logger.Info("engine started", "cells", e.grid.Len(), "max_cycles", maxCycles)
	e.metrics.EngineRunning.Set(1)
	defer e.metrics.EngineRunning.Set(0)

	clock := domain.Clock()
	for done := 0; maxCycles <= 0 || done < maxCycles; done++ {
		select {
		case <-ctx.Done():
			e.logger.Info("engine stopping", "reason", ctx.Err())
			return nil
		default:
		}

		result, err := e.RunCycle(ctx)
		if err != nil {
			e.logger.Error("cycle failed, halting run", "error", err)
			return err
		}
		e.metrics.CyclesTotal.Inc()

		e.logger.Info("cycle complete",
			"cycle", result.Cycle,
			"sensors_valid", result.SensorsValid,
			"max_rainfall", result.MaxRainfall,
			"avg_saturation", result.AvgSaturation,
			"unstable_fraction", result.UnstableFraction,
			"hotspots", len(result.Hotspots),
		)
		if emit != nil {
			emit(result)
		}

		if interval > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-clock.After(interval):
			}
		}
	}
	return nil
}

// observe pushes the cycle's summary state to the metrics gauges.
func (e *Engine) observe(result domain.CycleResult, fos []float64) {
	e.metrics.UnstableFraction.Set(result.UnstableFraction)
	e.metrics.AvgSaturation.Set(result.AvgSaturation)
	e.metrics.MaxRainfall.Set(result.MaxRainfall)
	if len(fos) > 0 {
		e.metrics.MinFoS.Set(floats.Min(fos))
	}
	if result.AlertTriggered {
		e.metrics.CycleAlerts.Inc()
	}
	e.metrics.HotspotAlerts.Add(float64(len(result.Hotspots)))
}

// publish forwards hotspot alerts to the sink, if any.
func (e *Engine) publish(ctx context.Context, result domain.CycleResult) {
	if e.sink == nil || len(result.Hotspots) == 0 {
		return
	}
	if err := e.sink.PublishAlerts(ctx, result.Hotspots); err != nil {
		e.logger.Warn("alert publish failed", "error", err, "alerts", len(result.Hotspots))
	}
}
