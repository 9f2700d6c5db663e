package sim

import (
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/sentinel-lews/risk-engine/internal/domain"
	"github.com/sentinel-lews/risk-engine/internal/hydro"
	"github.com/sentinel-lews/risk-engine/internal/risk"
	"github.com/sentinel-lews/risk-engine/internal/stability"
)

const (
	// Design storm for the single-shot stress test.
	demoRainMMPerHour = 50.0
	demoDurationHours = 12.0

	// demoDefaultSaturation seeds cells when no antecedent-rain column is
	// available.
	demoDefaultSaturation = 0.5

	// antecedentColumn is the 30-day rolling rainfall column used to derive
	// initial saturation when present: clip(R_30d / 500, 0, 0.9).
	antecedentColumn = "R_30d"
	antecedentScale  = 500.0
	antecedentSatCap = 0.9

	// demoPerfBudget is the wall-clock budget for the full pipeline pass.
	demoPerfBudget = 15 * time.Second
)

// DemoOptions tune the quick demo. Zero values select the design storm.
type DemoOptions struct {
	RainMMPerHour float64
	DurationHours float64
	RiskThreshold float64
}

// DemoReport is the external-facing result of RunQuickDemo.
type DemoReport struct {
	Status string `json:"status"`
	Log    string `json:"logs"`

	Alerts   []string              `json:"alerts,omitempty"`
	Hotspots []domain.HotspotAlert `json:"hotspots,omitempty"`
	PeakRisk float64               `json:"peak_risk"`
	MinFoS   float64               `json:"min_fos"`
	Elapsed  float64               `json:"elapsed_seconds"`
	PerfOK   bool                  `json:"performance_ok"`
}

// RunQuickDemo runs a single high-intensity design storm (50 mm/hr for 12 h)
// over the grid and reports the top hotspot alerts plus cycle metrics. It is
// the stress-test entry point used for demonstrations and smoke checks.
func RunQuickDemo(grid *domain.Grid, opts DemoOptions) (report *DemoReport) {
	log := &runLog{}
	report = &DemoReport{Status: StatusSuccess}
	defer func() {
		if r := recover(); r != nil {
			log.printf("Execution error: %v", r)
			report = &DemoReport{Status: StatusError, Log: log.String()}
		}
		report.Log = log.String()
	}()

	start := domain.Clock().Now()
	log.printf("=== Sentinel-LEWS Edge Pipeline ===")

	if grid == nil {
		log.printf("Error: dataset not found")
		return &DemoReport{Status: StatusError}
	}
	if err := grid.Validate(); err != nil {
		log.printf("Error: dataset invalid: %v", err)
		return &DemoReport{Status: StatusError}
	}

	rain := opts.RainMMPerHour
	if rain <= 0 {
		rain = demoRainMMPerHour
	}
	duration := opts.DurationHours
	if duration <= 0 {
		duration = demoDurationHours
	}
	threshold := opts.RiskThreshold
	if threshold <= 0 {
		threshold = risk.DefaultThreshold
	}

	log.printf("Data stats:")
	log.printf("  Slope: min %.1f, max %.1f", floats.Min(grid.Slope), floats.Max(grid.Slope))
	log.printf("  Elev:  min %.1f, max %.1f", floats.Min(grid.Elevation), floats.Max(grid.Elevation))

	saturation := demoInitialSaturation(grid)
	tracker := hydro.NewTrackerFromState(saturation)

	fos := stability.ComputeFoS(grid, tracker.State(), rain, duration)

	gen := risk.NewGenerator()
	gen.Threshold = threshold
	assessment := gen.Evaluate(fos, grid.Lat, grid.Lon)

	log.printf("")
	log.printf("[HOTSPOTS DETECTED]")
	for _, h := range assessment.Hotspots {
		report.Alerts = append(report.Alerts, h.Message)
		log.printf("%s", h.Message)
	}
	if len(assessment.Hotspots) == 0 {
		log.printf("No hotspots found > %.2f risk.", threshold)
	}
	report.Hotspots = assessment.Hotspots

	report.MinFoS = floats.Min(fos)
	report.PeakRisk = floats.Max(assessment.Risk)

	elapsed := domain.Clock().Now().Sub(start)
	report.Elapsed = elapsed.Seconds()
	report.PerfOK = elapsed <= demoPerfBudget

	log.printf("")
	log.printf("[METRICS]")
	log.printf("Total time: %.4fs", report.Elapsed)
	log.printf("Peak Risk: %.4f", report.PeakRisk)
	log.printf("Min FoS: %.4f", report.MinFoS)
	if report.PerfOK {
		log.printf("SUCCESS: Performance constraint met (<%ds)", int(demoPerfBudget.Seconds()))
	} else {
		log.printf("WARNING: Performance constraint violated (>%ds)", int(demoPerfBudget.Seconds()))
	}
	return report
}

// demoInitialSaturation derives the antecedent saturation state: from the
// 30-day rainfall column when the dataset carries one, flat 0.5 otherwise.
func demoInitialSaturation(grid *domain.Grid) []float64 {
	sat := make([]float64, grid.Len())
	col, ok := grid.HistoryColumn(antecedentColumn)
	if !ok {
		for i := range sat {
			sat[i] = demoDefaultSaturation
		}
		return sat
	}
	for i, r := range col {
		s := r / antecedentScale
		if s < 0 {
			s = 0
		}
		if s > antecedentSatCap {
			s = antecedentSatCap
		}
		sat[i] = s
	}
	return sat
}
