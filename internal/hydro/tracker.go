// Package hydro owns the per-cell soil-saturation state, the only data that
// persists across simulation cycles.
package hydro

import (
	"github.com/sentinel-lews/risk-engine/internal/domain"
)

const (
	// SaturationFloor keeps residual moisture in the profile; fully dry soil
	// does not occur in the monitored climate.
	SaturationFloor = 0.05
	// SaturationCeiling is full pore saturation.
	SaturationCeiling = 1.0

	// DefaultDecayRate models drainage between cycles.
	DefaultDecayRate = 0.985
	// DefaultInfiltrationGain converts interpolated intensity (mm/hr) into a
	// per-cycle saturation increment: gain * intensity / 100.
	DefaultInfiltrationGain = 0.08
	// DefaultInitialSaturation seeds a fresh tracker.
	DefaultInitialSaturation = 0.2
)

// Tracker advances the saturation vector one cycle at a time as a first-order
// discrete low-pass filter over rainfall forcing: the previous value decays
// toward the floor while infiltration pushes it up, clamped to
// [SaturationFloor, SaturationCeiling].
//
// The tracker is the exclusive writer of its state; each cell's update
// depends only on that cell, so a cycle is fully data-parallel. It is not
// safe for concurrent Advance calls, which the strict cycle pipeline never
// issues.
type Tracker struct {
	state     []float64
	decayRate float64
	gain      float64
}

// NewTracker creates a tracker for n cells, all seeded at initial saturation
// (clamped into the valid range).
func NewTracker(n int, initial float64) *Tracker {
	t := &Tracker{
		state:     make([]float64, n),
		decayRate: DefaultDecayRate,
		gain:      DefaultInfiltrationGain,
	}
	initial = clampSaturation(initial)
	for i := range t.state {
		t.state[i] = initial
	}
	return t
}

// NewTrackerFromState creates a tracker seeded from an existing saturation
// vector, e.g. one derived from antecedent rainfall. The vector is copied and
// clamped into range.
func NewTrackerFromState(state []float64) *Tracker {
	t := &Tracker{
		state:     make([]float64, len(state)),
		decayRate: DefaultDecayRate,
		gain:      DefaultInfiltrationGain,
	}
	for i, s := range state {
		t.state[i] = clampSaturation(s)
	}
	return t
}

// Advance applies one cycle of decay plus rainfall forcing. The rainfall
// field must have one entry per cell; a short or nil field (the "no valid
// sensor data" state from an empty filter result) contributes zero forcing.
func (t *Tracker) Advance(rain domain.RainfallField) {
	for i := range t.state {
		forcing := 0.0
		if i < len(rain) {
			forcing = rain[i] / 100.0 * t.gain
		}
		t.state[i] = clampSaturation(t.state[i]*t.decayRate + forcing)
	}
}

// State returns the live saturation vector. Callers must treat it as
// read-only; the stability model reads it after Advance within the same
// cycle.
func (t *Tracker) State() []float64 { return t.state }

// Mean returns the average saturation across all cells, 0 for an empty grid.
func (t *Tracker) Mean() float64 {
	if len(t.state) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range t.state {
		sum += s
	}
	return sum / float64(len(t.state))
}

func clampSaturation(s float64) float64 {
	if s < SaturationFloor {
		return SaturationFloor
	}
	if s > SaturationCeiling {
		return SaturationCeiling
	}
	return s
}
