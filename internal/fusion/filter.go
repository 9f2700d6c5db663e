// Package fusion turns raw rain-gauge reports into a per-cell rainfall field:
// a median-deviation anomaly filter followed by inverse-distance-weighted
// spatial interpolation.
package fusion

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/sentinel-lews/risk-engine/internal/domain"
)

const (
	// PhysicalCeiling is the sanity bound for rainfall intensity in mm/hr.
	// Sustained intensities above ~200 mm/hr exceed recorded cloudbursts for
	// the monitored region and indicate instrument faults.
	PhysicalCeiling = 200.0

	// DeviationFactor is how far above the station median a reading may sit
	// before it is treated as a fault spike.
	DeviationFactor = 4.0
)

// FilterAnomalies returns the subset of readings judged physically plausible,
// order preserved. A reading is rejected when its value exceeds
// max(median*DeviationFactor, PhysicalCeiling): a stuck gauge reporting 9999
// is dropped even when every other station clusters near 20-50 mm/hr, and a
// single faulty station cannot drag the cutoff with it.
//
// The filter never fabricates readings; output size is at most input size.
// An empty result means "no valid sensor data this cycle" and downstream
// stages must produce an all-zero field for it.
func FilterAnomalies(readings []domain.StationReading) []domain.StationReading {
	if len(readings) == 0 {
		return nil
	}

	vals := make([]float64, len(readings))
	for i, r := range readings {
		vals[i] = r.MMPerHour
	}
	sort.Float64s(vals)
	median := stat.Quantile(0.5, stat.Empirical, vals, nil)

	cutoff := median * DeviationFactor
	if cutoff < PhysicalCeiling {
		cutoff = PhysicalCeiling
	}

	kept := make([]domain.StationReading, 0, len(readings))
	for _, r := range readings {
		if r.MMPerHour <= cutoff {
			kept = append(kept, r)
		}
	}
	return kept
}
