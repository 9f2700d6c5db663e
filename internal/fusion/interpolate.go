package fusion

import (
	"gonum.org/v1/gonum/floats"

	"github.com/sentinel-lews/risk-engine/internal/domain"
)

// distEpsilon floors the squared planar distance between a cell and a station
// so a gauge sitting exactly on a cell never produces a singular weight.
const distEpsilon = 1e-6

// Interpolate spreads the filtered station readings over the grid by inverse
// squared-distance weighting in planar lat/lon space, then rescales the whole
// field so its peak equals the maximum reported station value. The rescaling
// anchors the field magnitude to a physical gauge reading instead of the
// arbitrary scale 1/d² accumulation produces; it is load-bearing for
// compatibility with the historical model runs and must not be removed.
//
// An empty reading set yields the all-zero field.
func Interpolate(readings []domain.StationReading, lat, lon []float64) domain.RainfallField {
	field := make(domain.RainfallField, len(lat))
	if len(readings) == 0 || len(field) == 0 {
		return field
	}

	maxStation := 0.0
	for _, r := range readings {
		if r.MMPerHour > maxStation {
			maxStation = r.MMPerHour
		}
	}

	for i := range lat {
		acc := 0.0
		for _, r := range readings {
			dLat := lat[i] - r.Lat
			dLon := lon[i] - r.Lon
			d2 := dLat*dLat + dLon*dLon
			if d2 < distEpsilon {
				d2 = distEpsilon
			}
			acc += r.MMPerHour / d2
		}
		field[i] = acc
	}

	if peak := floats.Max(field); peak > 0 {
		floats.Scale(maxStation/peak, field)
	}
	return field
}
