package domain

import "fmt"

// SoilColumns holds the per-cell geotechnical parameters as parallel slices,
// one entry per grid cell.
type SoilColumns struct {
	Cohesion      []float64 // c, kPa
	FrictionAngle []float64 // phi, degrees
	UnitWeight    []float64 // gamma, kN/m³
	Depth         []float64 // z, m
	Ksat          []float64 // saturated conductivity, m/s
}

// Grid is the static terrain table: one entry per cell across all columns.
// It is loaded once at startup and never mutated by the engine; per-cycle
// state lives elsewhere. The column-per-slice layout keeps every model stage
// a plain elementwise pass.
type Grid struct {
	Lat       []float64 // degrees
	Lon       []float64 // degrees
	Elevation []float64 // m
	Slope     []float64 // degrees
	Soil      SoilColumns

	// History holds optional antecedent-rainfall columns keyed by their CSV
	// header (e.g. "R_30d", "2023-07-01"). Used by the backtest and demo
	// entry points; empty for purely live grids.
	History map[string][]float64
}

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.Lat) }

// Validate checks that all columns are present and of equal length.
func (g *Grid) Validate() error {
	n := len(g.Lat)
	if n == 0 {
		return fmt.Errorf("grid has no cells")
	}
	cols := map[string]int{
		"lon":       len(g.Lon),
		"elevation": len(g.Elevation),
		"slope":     len(g.Slope),
		"c":         len(g.Soil.Cohesion),
		"phi":       len(g.Soil.FrictionAngle),
		"gamma":     len(g.Soil.UnitWeight),
		"depth":     len(g.Soil.Depth),
		"ksat":      len(g.Soil.Ksat),
	}
	for name, l := range cols {
		if l != n {
			return fmt.Errorf("grid column %s has %d entries, want %d", name, l, n)
		}
	}
	for name, col := range g.History {
		if len(col) != n {
			return fmt.Errorf("grid history column %s has %d entries, want %d", name, len(col), n)
		}
	}
	return nil
}

// HistoryColumn returns the named antecedent-rainfall column, or false if the
// dataset does not carry it.
func (g *Grid) HistoryColumn(name string) ([]float64, bool) {
	col, ok := g.History[name]
	return col, ok
}
