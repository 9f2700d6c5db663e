package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// simulation engine.
type Metrics struct {
	CyclesTotal     prometheus.Counter
	EngineRunning   prometheus.Gauge
	CycleDuration   prometheus.Histogram
	ComputeFailures prometheus.Counter

	// Sensor fusion metrics.
	ReadingsReceived prometheus.Counter
	ReadingsRejected prometheus.Counter

	// Per-cycle model state.
	UnstableFraction prometheus.Gauge
	AvgSaturation    prometheus.Gauge
	MaxRainfall      prometheus.Gauge
	MinFoS           prometheus.Gauge

	// Alerting metrics.
	CycleAlerts   prometheus.Counter
	HotspotAlerts prometheus.Counter
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.CyclesTotal,
		m.EngineRunning,
		m.CycleDuration,
		m.ComputeFailures,
		m.ReadingsReceived,
		m.ReadingsRejected,
		m.UnstableFraction,
		m.AvgSaturation,
		m.MaxRainfall,
		m.MinFoS,
		m.CycleAlerts,
		m.HotspotAlerts,
	)
	return m
}

// NewUnregisteredMetrics creates Metrics without touching the default
// registry. It is the default for library-embedded runs and keeps tests free
// of "already registered" panics.
func NewUnregisteredMetrics() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		CyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lews",
			Name:      "cycles_total",
			Help:      "Total simulation cycles completed.",
		}),
		EngineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lews",
			Name:      "engine_running",
			Help:      "1 while a simulation run is active, 0 otherwise.",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lews",
			Name:      "cycle_duration_seconds",
			Help:      "Wall time of one full filter-interpolate-track-stability-risk cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		ComputeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lews",
			Name:      "compute_failures_total",
			Help:      "Unexpected failures caught at the run boundary.",
		}),
		ReadingsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lews",
			Name:      "sensor_readings_received_total",
			Help:      "Raw station readings entering the anomaly filter.",
		}),
		ReadingsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lews",
			Name:      "sensor_readings_rejected_total",
			Help:      "Readings rejected as implausible by the anomaly filter.",
		}),
		UnstableFraction: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lews",
			Name:      "unstable_fraction",
			Help:      "Fraction of grid cells with FoS below 1 in the latest cycle.",
		}),
		AvgSaturation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lews",
			Name:      "avg_saturation",
			Help:      "Mean per-cell soil saturation after the latest cycle.",
		}),
		MaxRainfall: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lews",
			Name:      "max_rainfall_mm_per_hr",
			Help:      "Peak interpolated rainfall intensity in the latest cycle.",
		}),
		MinFoS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lews",
			Name:      "min_fos",
			Help:      "Minimum Factor of Safety across the grid in the latest cycle.",
		}),
		CycleAlerts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lews",
			Name:      "cycle_alerts_total",
			Help:      "Cycles that triggered the widespread-instability alert.",
		}),
		HotspotAlerts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lews",
			Name:      "hotspot_alerts_total",
			Help:      "Individual hotspot alert messages emitted.",
		}),
	}
}
