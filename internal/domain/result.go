package domain

import "time"

// HotspotAlert identifies one grid cell whose risk score crossed the alert
// threshold, with a pre-rendered SMS-length message.
type HotspotAlert struct {
	CellIndex int     `json:"cell_index"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Risk      float64 `json:"risk"`
	FoS       float64 `json:"fos"`
	Message   string  `json:"message"`
}

// CycleResult is the derived output of one simulation cycle. Per-cell slices
// are aligned with the grid; everything here is recomputed every cycle.
type CycleResult struct {
	Cycle int `json:"cycle"`

	FoS  []float64 `json:"fos,omitempty"`
	Risk []float64 `json:"risk,omitempty"`

	SensorsTotal int `json:"sensors_total"`
	SensorsValid int `json:"sensors_valid"`

	MaxRainfall      float64 `json:"max_rainfall_mm_per_hr"`
	AvgSaturation    float64 `json:"avg_saturation"`
	UnstableFraction float64 `json:"unstable_fraction"`

	// AlertTriggered is set when the unstable fraction exceeds the
	// widespread-instability threshold for the cycle.
	AlertTriggered bool           `json:"alert_triggered"`
	Hotspots       []HotspotAlert `json:"hotspots,omitempty"`

	ComputedAt time.Time `json:"computed_at"`
}
