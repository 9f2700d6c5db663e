package domain

// StationReading is one rain-gauge report for the current cycle. Readings are
// ephemeral: they are filtered, interpolated, and discarded.
type StationReading struct {
	StationID string  `json:"station_id"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	// MMPerHour is the reported intensity. Non-negative, but may carry a
	// fault sentinel far outside physical range (e.g. 9999).
	MMPerHour float64 `json:"value_mm_per_hr"`
}

// RainfallField is the interpolated per-cell intensity in mm/hr, one entry
// per grid cell. An all-zero field is the first-class "no valid sensor data
// this cycle" state.
type RainfallField []float64

// Max returns the peak intensity of the field, or 0 for an empty field.
func (f RainfallField) Max() float64 {
	max := 0.0
	for _, v := range f {
		if v > max {
			max = v
		}
	}
	return max
}
