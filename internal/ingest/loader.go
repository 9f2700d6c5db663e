// Package ingest loads the static terrain grid from CSV and fills in soil
// parameters when the dataset only carries raw terrain columns.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/sentinel-lews/risk-engine/internal/domain"
)

// Column-name aliases seen across exported terrain datasets. Headers are
// matched case-insensitively after trimming.
var columnAliases = map[string][]string{
	"lat":       {"lat", "latitude", "y"},
	"lon":       {"lon", "longitude", "lng", "x"},
	"elevation": {"elevation", "elev", "dem", "altitude"},
	"slope":     {"slope", "slope_deg", "slope_degrees"},
	"c":         {"c", "cohesion"},
	"phi":       {"phi", "friction", "friction_angle"},
	"gamma":     {"gamma", "unit_weight"},
	"depth":     {"depth", "soil_depth", "z"},
	"ksat":      {"ksat", "k_sat", "conductivity", "saturated_conductivity"},
}

// historyColumnRe matches antecedent-rainfall columns: rolling windows like
// "R_30d" and labeled periods like "2023-07-01".
var historyColumnRe = regexp.MustCompile(`^(R_\d+d|\d{4}-\d{2}-\d{2})$`)

// LoadGrid reads a terrain grid CSV. lat, lon, elevation, and slope are
// required; missing required columns surface domain.ErrDataUnavailable. Soil
// parameter columns (c, phi, gamma, depth, ksat) are used when present and
// estimated from slope and elevation otherwise. Antecedent-rainfall columns
// are captured into Grid.History.
func LoadGrid(path string) (*domain.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open grid %s: %v", domain.ErrDataUnavailable, path, err)
	}
	defer f.Close()
	return ParseGrid(f)
}

// ParseGrid reads a terrain grid CSV from r. See LoadGrid.
func ParseGrid(r io.Reader) (*domain.Grid, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read grid header: %v", domain.ErrDataUnavailable, err)
	}

	idx, history := resolveColumns(header)
	for _, required := range []string{"lat", "lon", "elevation", "slope"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("%w: required column %q not found in header %v",
				domain.ErrDataUnavailable, required, header)
		}
	}

	grid := &domain.Grid{History: map[string][]float64{}}
	hasSoil := true
	for _, col := range []string{"c", "phi", "gamma", "depth", "ksat"} {
		if _, ok := idx[col]; !ok {
			hasSoil = false
		}
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read grid row: %w", err)
		}

		grid.Lat = append(grid.Lat, fieldFloat(rec, idx["lat"]))
		grid.Lon = append(grid.Lon, fieldFloat(rec, idx["lon"]))
		grid.Elevation = append(grid.Elevation, fieldFloat(rec, idx["elevation"]))
		grid.Slope = append(grid.Slope, fieldFloat(rec, idx["slope"]))

		if hasSoil {
			grid.Soil.Cohesion = append(grid.Soil.Cohesion, fieldFloat(rec, idx["c"]))
			grid.Soil.FrictionAngle = append(grid.Soil.FrictionAngle, fieldFloat(rec, idx["phi"]))
			grid.Soil.UnitWeight = append(grid.Soil.UnitWeight, fieldFloat(rec, idx["gamma"]))
			grid.Soil.Depth = append(grid.Soil.Depth, fieldFloat(rec, idx["depth"]))
			grid.Soil.Ksat = append(grid.Soil.Ksat, fieldFloat(rec, idx["ksat"]))
		}
		for name, col := range history {
			grid.History[name] = append(grid.History[name], fieldFloat(rec, col))
		}
	}

	if grid.Len() == 0 {
		return nil, fmt.Errorf("%w: grid has no rows", domain.ErrDataUnavailable)
	}
	if !hasSoil {
		grid.Soil = EstimateSoil(grid.Slope, grid.Elevation)
	}
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	return grid, nil
}

// resolveColumns maps canonical column names to indices and collects
// antecedent-rainfall columns by their literal header.
func resolveColumns(header []string) (idx map[string]int, history map[string]int) {
	idx = map[string]int{}
	history = map[string]int{}
	for i, h := range header {
		h = strings.TrimSpace(h)
		lower := strings.ToLower(h)
		matched := false
		for canonical, aliases := range columnAliases {
			for _, a := range aliases {
				if lower == a {
					if _, taken := idx[canonical]; !taken {
						idx[canonical] = i
					}
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if !matched && historyColumnRe.MatchString(h) {
			history[h] = i
		}
	}
	return idx, history
}

// fieldFloat parses record[i] as float64, returning 0 for missing or
// malformed fields so one bad cell does not discard the row.
func fieldFloat(rec []string, i int) float64 {
	if i < 0 || i >= len(rec) {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
	if err != nil {
		return 0
	}
	return v
}
