// Package stability implements the vectorized infinite-slope Factor of
// Safety model with a Green-Ampt-style transient infiltration step.
package stability

import (
	"math"

	"github.com/sentinel-lews/risk-engine/internal/domain"
)

const (
	// gammaWater is the unit weight of water in kN/m³.
	gammaWater = 9.81

	// effectivePorosity converts infiltrated water depth into a rise of the
	// perched water table.
	effectivePorosity = 0.3

	// mmPerHourToMetersPerSecond converts rainfall intensity units.
	mmPerHourToMetersPerSecond = 2.777e-7

	// slopeMinDeg/slopeMaxDeg clamp slope before trigonometry so flat and
	// vertical cells stay numerically defined.
	slopeMinDeg = 0.1
	slopeMaxDeg = 89.9

	// drivingFloor keeps the driving shear stress away from zero on
	// near-flat terrain.
	drivingFloor = 1e-5

	// FoSMax is where the model saturates instead of reporting unbounded
	// safety margins; FoS 0 signals failure.
	FoSMax = 10.0
)

// DefaultStormDuration is the rolling forecast window in hours.
const DefaultStormDuration = 6.0

// ComputeFoS evaluates the infinite-slope model for every cell of the grid at
// once and returns one FoS per cell, clamped to [0, FoSMax].
//
// saturation holds the per-cell water-table fraction in [0.05, 1]; intensity
// is a single storm intensity in mm/hr applied to the whole batch (the
// pipeline passes the peak of the interpolated field — spatial variation
// enters through saturation); durationHours is the Green-Ampt infiltration
// window.
//
// Every step is an elementwise pass with clamps and floors in place of
// branching, so degenerate cells (flat slope, zero cohesion, zero friction,
// fully saturated profile) flow through the same arithmetic as the rest of
// the batch and can never raise.
func ComputeFoS(grid *domain.Grid, saturation []float64, intensity, durationHours float64) []float64 {
	n := grid.Len()
	fos := make([]float64, n)

	rainRate := intensity * mmPerHourToMetersPerSecond
	durationSec := durationHours * 3600.0

	for i := 0; i < n; i++ {
		slope := clamp(grid.Slope[i], slopeMinDeg, slopeMaxDeg) * math.Pi / 180.0
		sinA := math.Sin(slope)
		cosA := math.Cos(slope)
		cos2A := cosA * cosA

		c := grid.Soil.Cohesion[i]
		gamma := grid.Soil.UnitWeight[i]
		z := grid.Soil.Depth[i]
		tanPhi := math.Tan(grid.Soil.FrictionAngle[i] * math.Pi / 180.0)

		// Infiltration is capped by the soil's own permeability, not by
		// rainfall supply.
		infRate := math.Min(rainRate, grid.Soil.Ksat[i])
		rise := infRate * durationSec / effectivePorosity

		// Perched water height: antecedent table plus storm rise, never
		// above the soil column itself.
		hWater := clamp(saturation[i]*z+rise, 0.0, z)

		sigmaN := gamma * z * cos2A
		pore := gammaWater * hWater * cos2A
		sigmaPrime := math.Max(sigmaN-pore, 0.0)

		driving := math.Max(gamma*z*sinA*cosA, drivingFloor)
		resisting := c + sigmaPrime*tanPhi

		fos[i] = clamp(resisting/driving, 0.0, FoSMax)
	}
	return fos
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
