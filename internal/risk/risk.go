// Package risk maps Factor-of-Safety values onto probability-like risk
// scores, selects alert hotspots, and renders SMS-length alert messages.
package risk

import (
	"fmt"
	"math"
	"sort"

	"github.com/sentinel-lews/risk-engine/internal/domain"
)

const (
	// DefaultThreshold is the minimum risk score for a cell to count as a
	// hotspot during live monitoring.
	DefaultThreshold = 0.75
	// BacktestThreshold is the stricter hotspot cutoff used when replaying
	// historical events.
	BacktestThreshold = 0.8
	// DefaultHotspotLimit bounds how many alerts a single cycle may emit.
	DefaultHotspotLimit = 10
	// WidespreadThreshold is the unstable-area fraction above which the
	// cycle-level "widespread instability" alert fires.
	WidespreadThreshold = 0.05

	// maxSMSLen bounds alert messages to a single SMS segment.
	maxSMSLen = 160
)

// Curve is the logistic FoS→risk transform 1/(1+exp(k·(fos−mid))). Live
// monitoring and historical backtesting intentionally use different
// steepness and midpoints, so both are explicit fields rather than
// constants.
type Curve struct {
	Steepness float64 // k
	Midpoint  float64 // FoS at which risk crosses 0.5
}

// LiveCurve is the steep transform used for live monitoring: risk collapses
// quickly once FoS clears 1.
func LiveCurve() Curve { return Curve{Steepness: 10, Midpoint: 1.0} }

// BacktestCurve is the flatter, conservatively shifted transform used when
// replaying historical events.
func BacktestCurve() Curve { return Curve{Steepness: 5, Midpoint: 1.1} }

// Score maps one FoS value to [0, 1].
func (c Curve) Score(fos float64) float64 {
	return 1.0 / (1.0 + math.Exp(c.Steepness*(fos-c.Midpoint)))
}

// Scores maps a whole FoS batch.
func (c Curve) Scores(fos []float64) []float64 {
	out := make([]float64, len(fos))
	for i, f := range fos {
		out[i] = c.Score(f)
	}
	return out
}

// Assessment is the risk-stage output for one cycle.
type Assessment struct {
	Risk             []float64
	UnstableFraction float64
	AlertTriggered   bool
	Hotspots         []domain.HotspotAlert
}

// Generator turns FoS batches into assessments.
type Generator struct {
	Curve        Curve
	Threshold    float64
	HotspotLimit int
}

// NewGenerator returns a generator with the live curve and default limits.
func NewGenerator() Generator {
	return Generator{Curve: LiveCurve(), Threshold: DefaultThreshold, HotspotLimit: DefaultHotspotLimit}
}

// Evaluate scores every cell, measures the unstable area (FoS < 1), and picks
// the top hotspots above the threshold, sorted by descending risk and capped
// at HotspotLimit. lat/lon are the grid coordinate columns aligned with fos.
func (g Generator) Evaluate(fos, lat, lon []float64) Assessment {
	a := Assessment{Risk: g.Curve.Scores(fos)}
	if len(fos) == 0 {
		return a
	}

	unstable := 0
	for _, f := range fos {
		if f < 1.0 {
			unstable++
		}
	}
	a.UnstableFraction = float64(unstable) / float64(len(fos))
	a.AlertTriggered = a.UnstableFraction > WidespreadThreshold

	candidates := make([]int, 0, len(fos))
	for i, r := range a.Risk {
		if r > g.Threshold {
			candidates = append(candidates, i)
		}
	}
	sort.SliceStable(candidates, func(x, y int) bool {
		return a.Risk[candidates[x]] > a.Risk[candidates[y]]
	})
	if g.HotspotLimit > 0 && len(candidates) > g.HotspotLimit {
		candidates = candidates[:g.HotspotLimit]
	}

	for _, i := range candidates {
		a.Hotspots = append(a.Hotspots, domain.HotspotAlert{
			CellIndex: i,
			Lat:       lat[i],
			Lon:       lon[i],
			Risk:      a.Risk[i],
			FoS:       fos[i],
			Message:   FormatSMS(lat[i], lon[i], a.Risk[i], fos[i]),
		})
	}
	return a
}

// FormatSMS renders the fixed-format alert for one hotspot, bounded to a
// single SMS segment.
func FormatSMS(lat, lon, risk, fos float64) string {
	msg := fmt.Sprintf("ALERT: High Landslide Risk (%.2f). Loc:%.4f,%.4f FoS:%.2f. AC:Immediate",
		risk, lat, lon, fos)
	if len(msg) > maxSMSLen {
		msg = msg[:maxSMSLen]
	}
	return msg
}
