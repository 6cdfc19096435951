package nmo_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/velan/gather"
	"github.com/katalvlaran/velan/matrix"
	"github.com/katalvlaran/velan/nmo"
	"github.com/katalvlaran/velan/synthetic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomGather builds a gather with seeded amplitudes, 2 ms sampling from 0 ms.
func randomGather(t *testing.T, nTraces, nSamples int, offsets []float64, seed int64) *gather.Gather {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	data, err := matrix.NewDense(nTraces, nSamples)
	require.NoError(t, err)
	for i := 0; i < nTraces; i++ {
		row := data.RawRowView(i)
		for k := range row {
			row[k] = rng.NormFloat64()
		}
	}
	times := make([]float64, nSamples)
	for k := range times {
		times[k] = 2 * float64(k)
	}
	g, err := gather.New(data, times, offsets)
	require.NoError(t, err)

	return g
}

// TestHodographZeroTime checks that t0=0 collapses onto row 0 for zero offsets
// at any velocity and for nonzero offsets at a very large velocity.
func TestHodographZeroTime(t *testing.T) {
	g := randomGather(t, 4, 50, []float64{0, 0, 0, 0}, 1)
	seis := g.Transposed()
	dst := make([]float64, 4)

	for _, v := range []float64{0.5, 1.5, 6} {
		nmo.Hodograph(dst, seis, 0, g.RawOffsets(), v, 0, g.SampleRate(), math.NaN())
		require.Equal(t, seis.RawRowView(0), dst)
	}

	offsets := []float64{0, 250, 1000, 3000}
	nmo.Hodograph(dst, seis, 0, offsets, 1e9, 0, g.SampleRate(), math.NaN())
	require.Equal(t, seis.RawRowView(0), dst)
}

// TestHodographTruncatesAndFills checks index truncation and out-of-range fill.
func TestHodographTruncatesAndFills(t *testing.T) {
	// 1 trace per offset; amplitude == sample index so dst reveals the index.
	nSamples := 10
	traces := make([][]float64, 3)
	for i := range traces {
		traces[i] = make([]float64, nSamples)
		for k := range traces[i] {
			traces[i][k] = float64(k)
		}
	}
	times := make([]float64, nSamples)
	for k := range times {
		times[k] = 4 * float64(k)
	}
	g, err := gather.FromRows(traces, times, []float64{0, 30, 400})
	require.NoError(t, err)

	dst := make([]float64, 3)
	// v = 1 m/ms; t0 = 8: offsets → t = 8, sqrt(64+900)=31.05, sqrt(64+160000)=400.08
	nmo.Hodograph(dst, g.Transposed(), 8, g.RawOffsets(), 1, 0, 4, -7)
	assert.Equal(t, []float64{2, 7, -7}, dst)
}

// TestHodographStartTime checks a non-zero first sample time.
func TestHodographStartTime(t *testing.T) {
	traces := [][]float64{{10, 11, 12, 13}}
	g, err := gather.FromRows(traces, []float64{100, 104, 108, 112}, []float64{0})
	require.NoError(t, err)

	dst := make([]float64, 1)
	nmo.Hodograph(dst, g.Transposed(), 108, g.RawOffsets(), 2, 100, 4, math.NaN())
	assert.Equal(t, 12.0, dst[0])

	nmo.Hodograph(dst, g.Transposed(), 98, g.RawOffsets(), 2, 100, 4, math.NaN())
	assert.True(t, math.IsNaN(dst[0]), "times before the record must be filled")
}

// TestApplyNMOZeroOffsetIdentity checks the offset-0 trace is reproduced exactly.
func TestApplyNMOZeroOffsetIdentity(t *testing.T) {
	g := randomGather(t, 5, 120, []float64{0, 100, 500, 1200, 2500}, 7)
	vels := make([]float64, g.NSamples())
	for k := range vels {
		vels[k] = 1500 + 10*float64(k)
	}

	out, err := nmo.ApplyNMO(g, vels)
	require.NoError(t, err)
	r, c := out.Shape()
	require.Equal(t, [2]int{5, 120}, [2]int{r, c})

	orig, _ := g.RawData().Row(0)
	got, _ := out.Row(0)
	require.Equal(t, orig, got)

	// The far trace leaves the record at late times: NaN, not zero.
	last, _ := out.At(4, 119)
	assert.True(t, math.IsNaN(last))
}

// TestApplyNMOFlattensEvent checks that the true velocity aligns a synthetic event.
func TestApplyNMOFlattensEvent(t *testing.T) {
	cfg := synthetic.Config{
		NTraces: 12, NSamples: 250, SampleRate: 4,
		MinOffset: 0, MaxOffset: 1100, Frequency: 25,
		Reflectors: []synthetic.Reflector{{T0: 400, Velocity: 2000, Amplitude: 1}},
	}
	g, err := synthetic.CMP(cfg)
	require.NoError(t, err)

	vels := make([]float64, g.NSamples())
	for k := range vels {
		vels[k] = 2000
	}
	out, err := nmo.ApplyNMO(g, vels)
	require.NoError(t, err)

	// After correction every trace peaks within one sample of t0 = 400 ms (index 100).
	for j := 0; j < g.NTraces(); j++ {
		row := out.RawRowView(j)
		best := 0
		for k := range row {
			if !math.IsNaN(row[k]) && row[k] > row[best] {
				best = k
			}
		}
		assert.InDelta(t, 100, best, 1, "trace %d", j)
	}
}

// TestApplyNMOErrors covers validation.
func TestApplyNMOErrors(t *testing.T) {
	g := randomGather(t, 2, 10, []float64{0, 1}, 3)

	_, err := nmo.ApplyNMO(nil, nil)
	require.ErrorIs(t, err, nmo.ErrNilInput)

	_, err = nmo.ApplyNMO(g, make([]float64, 9))
	require.ErrorIs(t, err, nmo.ErrVelocitiesMismatch)

	_, err = nmo.ApplyNMO(g, make([]float64, 10))
	require.ErrorIs(t, err, nmo.ErrNonPositiveVelocity)
}

// TestApplyLMO checks positive/negative shifts, fill and input immutability.
func TestApplyLMO(t *testing.T) {
	data, err := matrix.NewDenseRows([][]float64{
		{1, 2, 3, 4},
		{1, 2, 3, 4},
		{1, 2, 3, 4},
	})
	require.NoError(t, err)

	out, err := nmo.ApplyLMO(data, []int{0, 1, -2}, -9)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{
		{1, 2, 3, 4},
		{2, 3, 4, -9},
		{-9, -9, 1, 2},
	}, out.Rows2D())

	orig, _ := data.Row(1)
	assert.Equal(t, []float64{1, 2, 3, 4}, orig)

	_, err = nmo.ApplyLMO(data, []int{0}, 0)
	require.ErrorIs(t, err, nmo.ErrShiftsMismatch)
	_, err = nmo.ApplyLMO(nil, nil, 0)
	require.ErrorIs(t, err, nmo.ErrNilInput)
}

// TestLinearShifts checks offset/velocity to sample conversion.
func TestLinearShifts(t *testing.T) {
	// 2000 m/s = 2 m/ms; 4 ms sampling.
	assert.Equal(t, []int{0, 12, 12, 125}, nmo.LinearShifts([]float64{0, 100, -100, 1000}, 2000, 4))
}
