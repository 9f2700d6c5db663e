package ingest

import "github.com/sentinel-lews/risk-engine/internal/domain"

// EstimateSoil derives geotechnical parameters from slope and elevation for
// datasets that ship terrain columns only. The banding is a regional
// approximation, not a survey: gentle slopes accumulate deeper, more cohesive
// colluvium; steep slopes carry thin, coarse, free-draining cover with higher
// friction. Values land in the ranges used by the calibration fixtures
// (c ~6-15 kPa, phi ~26-34°, gamma ~18-19 kN/m³, depth ~1-3.5 m).
func EstimateSoil(slope, elevation []float64) domain.SoilColumns {
	n := len(slope)
	soil := domain.SoilColumns{
		Cohesion:      make([]float64, n),
		FrictionAngle: make([]float64, n),
		UnitWeight:    make([]float64, n),
		Depth:         make([]float64, n),
		Ksat:          make([]float64, n),
	}

	for i := 0; i < n; i++ {
		s := slope[i]
		switch {
		case s < 15:
			soil.Cohesion[i] = 15
			soil.FrictionAngle[i] = 26
			soil.Ksat[i] = 5e-6
		case s < 30:
			soil.Cohesion[i] = 10
			soil.FrictionAngle[i] = 30
			soil.Ksat[i] = 1e-5
		default:
			soil.Cohesion[i] = 6
			soil.FrictionAngle[i] = 34
			soil.Ksat[i] = 2e-5
		}

		// Soil thins linearly with slope: ~3.5 m on flats down to ~1 m on
		// 45°+ faces.
		depth := 3.5 - s/18.0
		if depth < 1.0 {
			depth = 1.0
		}
		soil.Depth[i] = depth

		// Higher terrain is more weathered and slightly lighter.
		if elevation[i] > 2200 {
			soil.UnitWeight[i] = 18.0
		} else {
			soil.UnitWeight[i] = 19.0
		}
	}
	return soil
}
