package hydro_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinel-lews/risk-engine/internal/domain"
	"github.com/sentinel-lews/risk-engine/internal/hydro"
)

func TestTracker_AdvanceAppliesDecayAndForcing(t *testing.T) {
	tr := hydro.NewTracker(3, 0.2)

	tr.Advance(domain.RainfallField{50, 0, 100})

	state := tr.State()
	require.Len(t, state, 3)
	// 0.2*0.985 + rain/100*0.08
	assert.InDelta(t, 0.237, state[0], 1e-9)
	assert.InDelta(t, 0.197, state[1], 1e-9)
	assert.InDelta(t, 0.277, state[2], 1e-9)
}

func TestTracker_ClampsUnderExtremeRainfall(t *testing.T) {
	tr := hydro.NewTracker(2, 0.9)

	// Forcing alone would push far above 1.0 before clamping.
	for i := 0; i < 50; i++ {
		tr.Advance(domain.RainfallField{5000, 9999})
	}
	for _, s := range tr.State() {
		assert.LessOrEqual(t, s, hydro.SaturationCeiling)
		assert.GreaterOrEqual(t, s, hydro.SaturationFloor)
	}
	assert.InDelta(t, 1.0, tr.State()[0], 1e-9)
}

func TestTracker_DecaysTowardFloorWithoutRain(t *testing.T) {
	tr := hydro.NewTracker(1, 0.8)

	prev := tr.State()[0]
	for i := 0; i < 500; i++ {
		tr.Advance(nil)
		cur := tr.State()[0]
		assert.LessOrEqual(t, cur, prev)
		prev = cur
	}
	assert.InDelta(t, hydro.SaturationFloor, tr.State()[0], 1e-9, "drainage bottoms out at the floor")
}

func TestTracker_ShortFieldContributesZeroForcing(t *testing.T) {
	tr := hydro.NewTracker(3, 0.5)

	// Field shorter than the grid: missing cells decay only.
	tr.Advance(domain.RainfallField{100})

	state := tr.State()
	assert.InDelta(t, 0.5*0.985+0.08, state[0], 1e-9)
	assert.InDelta(t, 0.5*0.985, state[1], 1e-9)
	assert.InDelta(t, 0.5*0.985, state[2], 1e-9)
}

func TestNewTrackerFromState_ClampsSeed(t *testing.T) {
	tr := hydro.NewTrackerFromState([]float64{-0.3, 0.5, 2.0})

	assert.Equal(t, []float64{hydro.SaturationFloor, 0.5, hydro.SaturationCeiling}, tr.State())
}

func TestTracker_MeanEmptyGrid(t *testing.T) {
	tr := hydro.NewTracker(0, 0.2)
	assert.Zero(t, tr.Mean())
}
