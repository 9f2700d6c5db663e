package sim_test

import (
	"github.com/sentinel-lews/risk-engine/internal/domain"
)

// testGrid builds a small hillside with a marginal steep flank (first half,
// stable when dry but failing under sustained storm loading) and a gentle
// stable bench (second half), plus history columns for the backtest and demo
// paths. The 2023-06-01 proxies leave the flank just above the backtest
// hotspot cutoff; the 2023-07-01 proxies push it well below.
func testGrid(n int, withHistory bool) *domain.Grid {
	g := &domain.Grid{}
	for i := 0; i < n; i++ {
		flank := i < n/2

		g.Lat = append(g.Lat, 31.05+float64(i)*0.005)
		g.Lon = append(g.Lon, 77.10+float64(i)*0.005)
		g.Elevation = append(g.Elevation, 2000+float64(i)*15)
		if flank {
			g.Slope = append(g.Slope, 38)
			g.Soil.Cohesion = append(g.Soil.Cohesion, 8)
			g.Soil.FrictionAngle = append(g.Soil.FrictionAngle, 28)
			g.Soil.Depth = append(g.Soil.Depth, 2.5)
		} else {
			g.Slope = append(g.Slope, 12)
			g.Soil.Cohesion = append(g.Soil.Cohesion, 15)
			g.Soil.FrictionAngle = append(g.Soil.FrictionAngle, 30)
			g.Soil.Depth = append(g.Soil.Depth, 2)
		}
		g.Soil.UnitWeight = append(g.Soil.UnitWeight, 19)
		g.Soil.Ksat = append(g.Soil.Ksat, 1e-4)
	}
	if withHistory {
		g.History = map[string][]float64{}
		for i := 0; i < n; i++ {
			g.History["R_30d"] = append(g.History["R_30d"], 300)
			g.History["2023-06-01"] = append(g.History["2023-06-01"], 90)
			g.History["2023-07-01"] = append(g.History["2023-07-01"], 410)
		}
	}
	return g
}
