package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinel-lews/risk-engine/internal/domain"
	"github.com/sentinel-lews/risk-engine/internal/sim"
)

func TestRunBacktest_DefaultMonsoonReplay(t *testing.T) {
	grid := testGrid(24, true)

	report := sim.RunBacktest(grid, sim.BacktestOptions{})

	require.Equal(t, sim.StatusSuccess, report.Status)
	require.Len(t, report.Results, 2)

	june, july := report.Results[0], report.Results[1]

	assert.Equal(t, "2023-06-01", june.Period)
	assert.Zero(t, june.Hotspots, "mild June leaves the marginal flank above the cutoff")
	assert.False(t, june.AlertTriggered)

	assert.Equal(t, "2023-07-01", july.Period)
	assert.Equal(t, 12, july.Hotspots, "extreme July fails the whole flank")
	assert.True(t, july.AlertTriggered)

	assert.Contains(t, report.Log, "ALERT TRIGGERED")
	assert.Contains(t, report.Log, "No Alert")
}

func TestRunBacktest_MissingColumnSkipped(t *testing.T) {
	grid := testGrid(24, true)
	delete(grid.History, "2023-06-01")

	report := sim.RunBacktest(grid, sim.BacktestOptions{})

	require.Equal(t, sim.StatusSuccess, report.Status)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "2023-07-01", report.Results[0].Period)
	assert.Contains(t, report.Log, "2023-06-01 not found, skipping")
}

func TestRunBacktest_NoHistoryIsErrorNotPanic(t *testing.T) {
	grid := testGrid(8, false)

	report := sim.RunBacktest(grid, sim.BacktestOptions{})

	assert.Equal(t, sim.StatusError, report.Status)
	assert.Empty(t, report.Results)
	assert.Contains(t, report.Log, "No historical data to process.")
}

func TestRunBacktest_NilGrid(t *testing.T) {
	report := sim.RunBacktest(nil, sim.BacktestOptions{})

	assert.Equal(t, sim.StatusError, report.Status)
	assert.Contains(t, report.Log, "Dataset not found.")
}

func TestRunBacktest_InvalidGrid(t *testing.T) {
	grid := &domain.Grid{
		Lat:       []float64{31.1, 31.2},
		Lon:       []float64{77.1, 77.2},
		Elevation: []float64{2000, 2100},
		Slope:     []float64{30}, // ragged column
	}

	report := sim.RunBacktest(grid, sim.BacktestOptions{})

	assert.Equal(t, sim.StatusError, report.Status)
	assert.Contains(t, report.Log, "Dataset invalid")
}

func TestRunBacktest_CustomPeriods(t *testing.T) {
	grid := testGrid(24, true)

	report := sim.RunBacktest(grid, sim.BacktestOptions{
		Periods: []sim.BacktestPeriod{
			{Column: "2023-07-01", IntensityMMPerHour: 45, SaturationProxy: 0.8},
		},
	})

	require.Equal(t, sim.StatusSuccess, report.Status)
	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].AlertTriggered)
}
