package semblance

import (
	"math"
	"testing"

	"github.com/katalvlaran/velan/coherency"
	"github.com/katalvlaran/velan/gather"
	"github.com/katalvlaran/velan/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGather(t *testing.T, nSamples int) *gather.Gather {
	t.Helper()
	offsets := []float64{0, 200, 400, 800}
	traces := make([][]float64, len(offsets))
	times := make([]float64, nSamples)
	for k := range times {
		times[k] = 4 * float64(k)
	}
	for j := range traces {
		traces[j] = make([]float64, nSamples)
		for k := range traces[j] {
			traces[j][k] = math.Sin(float64(k+j) / 4)
		}
	}
	g, err := gather.FromRows(traces, times, offsets)
	require.NoError(t, err)
	return g
}

// TestExpandCoversWindow checks the materialized range contains every window.
func TestExpandCoversWindow(t *testing.T) {
	g := testGather(t, 30)
	for _, w := range []int{0, 1, 5, 40} {
		e := newEngine(g, coherency.Semblance{}, w)
		for tMin := 0; tMin < 30; tMin++ {
			for tMax := tMin + 1; tMax <= 30; tMax++ {
				lo, hi := e.expand(tMin, tMax)
				require.GreaterOrEqual(t, lo, 0)
				require.LessOrEqual(t, hi, 29)
				for tm := tMin; tm < tMax; tm++ {
					require.LessOrEqual(t, lo, max(0, tm-w))
					require.GreaterOrEqual(t, hi, min(29, tm+w))
				}
			}
		}
	}
}

// TestColumnPartialRangeMatchesFull checks that a sub-range column is
// bit-identical to the same cells of a full-range column.
func TestColumnPartialRangeMatchesFull(t *testing.T) {
	g := testGather(t, 40)
	e := newEngine(g, coherency.Semblance{MinLive: 1}, 3)

	full, err := matrix.NewDense(40, 1)
	require.NoError(t, err)
	part, err := matrix.NewDense(40, 1)
	require.NoError(t, err)

	e.column(full, 0, 1.8, 0, 40)
	e.column(part, 0, 1.8, 10, 20)

	for tm := 0; tm < 40; tm++ {
		f, _ := full.At(tm, 0)
		p, _ := part.At(tm, 0)
		if tm >= 10 && tm < 20 {
			require.Equal(t, math.Float64bits(f), math.Float64bits(p), "sample %d", tm)
		} else {
			require.Equal(t, 0.0, p, "sample %d must stay untouched", tm)
		}
	}

	// Empty range is a no-op.
	e.column(part, 0, 1.8, 5, 5)
	p, _ := part.At(5, 0)
	assert.Equal(t, 0.0, p)
}

func TestTouchedRanges(t *testing.T) {
	left := []int{0, 0, 1, 2}
	right := []int{1, 2, 2, 3}
	got := touchedRanges(left, right, 5)
	assert.Equal(t, []columnRange{
		{index: 0, tMin: 0, tMax: 1},
		{index: 1, tMin: 0, tMax: 2},
		{index: 2, tMin: 1, tMax: 3},
		{index: 3, tMin: 3, tMax: 3},
	}, got)

	// Decreasing bounds: index 1 is first a right bound at t=1 but last a
	// left bound at t=0, so its range is empty and it is skipped.
	got = touchedRanges([]int{1, 0}, []int{2, 1}, 3)
	assert.Equal(t, []columnRange{
		{index: 0, tMin: 0, tMax: 1},
		{index: 2, tMin: 0, tMax: 1},
	}, got)
}

func TestResampleStretch(t *testing.T) {
	dst := make([]float64, 3)
	resampleStretch(dst, []float64{5})
	assert.Equal(t, []float64{5, 5, 5}, dst)

	resampleStretch(dst, []float64{0, 2})
	assert.InDeltaSlice(t, []float64{0, 1, 2}, dst, 1e-12)

	resampleStretch(dst, []float64{1, 4, 9})
	assert.Equal(t, []float64{1, 4, 9}, dst)

	dst = make([]float64, 5)
	resampleStretch(dst, []float64{1, 4, 9})
	assert.InDeltaSlice(t, []float64{1, 2.5, 4, 6.5, 9}, dst, 1e-12)

	one := make([]float64, 1)
	resampleStretch(one, []float64{3, 4})
	assert.Equal(t, []float64{3}, one)
}

func TestGatherOptionsDefaults(t *testing.T) {
	o, err := gatherOptions()
	require.NoError(t, err)
	assert.Equal(t, DefaultWindow, o.window)
	assert.Equal(t, DefaultDeviation, o.deviation)
	assert.Equal(t, DefaultFormula, o.formula)
	assert.GreaterOrEqual(t, o.workers, 1)
	assert.NotNil(t, o.logger)

	o, err = gatherOptions(nil, WithLogger(nil), WithWorkers(2))
	require.NoError(t, err)
	assert.NotNil(t, o.logger)
	assert.Equal(t, 2, o.workers)
}
