// Command gengrid generates a synthetic hillside terrain grid CSV for demos
// and test fixtures. The grid is a regular lat/lon lattice with a ridge
// running through it: slope and elevation vary smoothly, soil columns are
// estimated with the same banding the service applies to raw terrain data,
// and optional antecedent-rainfall columns exercise the backtest and demo
// entry points.
//
// Usage:
//
//	go run ./cmd/gengrid -out data/hillside_grid.csv -rows 40 -cols 40 -history
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"

	"github.com/sentinel-lews/risk-engine/internal/ingest"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "hillside_grid.csv", "output CSV path")
	rows := flag.Int("rows", 40, "grid rows")
	cols := flag.Int("cols", 40, "grid columns")
	history := flag.Bool("history", false, "include antecedent-rainfall columns (R_30d, 2023-06-01, 2023-07-01)")
	flag.Parse()

	if *rows <= 0 || *cols <= 0 {
		return fmt.Errorf("rows and cols must be positive")
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"lat", "lon", "elevation", "slope", "c", "phi", "gamma", "depth", "ksat"}
	if *history {
		header = append(header, "R_30d", "2023-06-01", "2023-07-01")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// Anchor near the Shimla ridge the reference deployment monitors.
	const (
		originLat = 31.05
		originLon = 77.10
		cellDeg   = 0.0025
	)

	n := *rows * *cols
	lat := make([]float64, 0, n)
	lon := make([]float64, 0, n)
	elev := make([]float64, 0, n)
	slope := make([]float64, 0, n)

	for r := 0; r < *rows; r++ {
		for c := 0; c < *cols; c++ {
			y := float64(r) / float64(*rows)
			x := float64(c) / float64(*cols)

			lat = append(lat, originLat+float64(r)*cellDeg)
			lon = append(lon, originLon+float64(c)*cellDeg)

			// Ridge profile: elevation peaks mid-grid, slopes steepen
			// toward the flanks.
			ridge := math.Sin(math.Pi * x)
			elev = append(elev, 1800+700*ridge+200*y)
			slope = append(slope, 8+42*math.Abs(math.Cos(math.Pi*x))*(0.4+0.6*y))
		}
	}

	soil := ingest.EstimateSoil(slope, elev)

	for i := 0; i < n; i++ {
		rec := []string{
			formatFloat(lat[i], 6),
			formatFloat(lon[i], 6),
			formatFloat(elev[i], 1),
			formatFloat(slope[i], 2),
			formatFloat(soil.Cohesion[i], 1),
			formatFloat(soil.FrictionAngle[i], 1),
			formatFloat(soil.UnitWeight[i], 1),
			formatFloat(soil.Depth[i], 2),
			strconv.FormatFloat(soil.Ksat[i], 'e', 1, 64),
		}
		if *history {
			// Wetter on the windward (low-lon) side; July far wetter than June.
			windward := 1.0 - float64(i%*cols)/float64(*cols)
			rec = append(rec,
				formatFloat(120+300*windward, 1),
				formatFloat(80+60*windward, 1),
				formatFloat(320+180*windward, 1),
			)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	fmt.Printf("wrote %d cells to %s\n", n, *out)
	return nil
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
