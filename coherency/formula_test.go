package coherency_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/velan/coherency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-12

var nan = math.NaN()

// TestRowMoments checks NaN skipping in the shared single pass.
func TestRowMoments(t *testing.T) {
	m := coherency.RowMoments([]float64{1, -2, nan, 3})
	assert.Equal(t, coherency.Moments{Live: 3, Sum: 2, AbsSum: 6, SqSum: 14}, m)

	assert.Equal(t, coherency.Moments{}, coherency.RowMoments([]float64{nan, nan}))
	assert.Equal(t, coherency.Moments{}, coherency.RowMoments(nil))

	assert.Equal(t, 2.0, coherency.NaNSum([]float64{1, -2, nan, 3}))
	assert.Equal(t, 3, coherency.CountLive([]float64{1, -2, nan, 3}))
	assert.Equal(t, 0.0, coherency.NaNSum([]float64{nan}))
}

// TestFormulaReduce pins every formula on the row [1, 2, NaN, 3]
// (live=3, Σx=6, Σ|x|=6, Σx²=14).
func TestFormulaReduce(t *testing.T) {
	row := []float64{1, 2, nan, 3}
	cases := []struct {
		name     string
		f        coherency.Formula
		num, den float64
	}{
		{"stacked_amplitude_mean", coherency.StackedAmplitude{S: 1}, 2, 1},
		{"stacked_amplitude_sqrt", coherency.StackedAmplitude{S: 0}, 6 / math.Sqrt(3), 1},
		{"normalized_stacked_amplitude", coherency.NormalizedStackedAmplitude{}, 6, 6},
		{"semblance", coherency.Semblance{MinLive: 1}, 36, 14},
		{"semblance_gated", coherency.Semblance{MinLive: 4}, 0, 14},
		{"weighted_semblance", coherency.WeightedSemblance{S: 1, MinLive: 1}, 12, 14},
		{"weighted_semblance_gated", coherency.WeightedSemblance{S: 1, MinLive: 4}, 0, 14},
		{"crosscorrelation", coherency.CrossCorrelation{}, 11, 1},
		{"energy_normalized_crosscorrelation", coherency.EnergyNormalizedCrossCorrelation{}, 22, 14},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			num, den := tc.f.Reduce(row)
			assert.InDelta(t, tc.num, num, tol)
			assert.InDelta(t, tc.den, den, tol)
		})
	}
}

// TestFormulaAllNaN checks every formula stays finite on an empty row.
func TestFormulaAllNaN(t *testing.T) {
	row := []float64{nan, nan, nan}
	for _, name := range coherency.Names() {
		f, err := coherency.ByName(name, 0.5, 1)
		require.NoError(t, err)
		num, den := f.Reduce(row)
		assert.False(t, math.IsNaN(num) || math.IsInf(num, 0), name)
		assert.False(t, math.IsNaN(den) || math.IsInf(den, 0), name)
		assert.Zero(t, num, name)
	}
}

// TestEnergyNormalizedSingleTrace checks the one-live-trace guard.
func TestEnergyNormalizedSingleTrace(t *testing.T) {
	num, den := coherency.EnergyNormalizedCrossCorrelation{}.Reduce([]float64{nan, 5, nan})
	assert.Equal(t, 0.0, num)
	assert.Equal(t, 25.0, den)
}

// TestSemblanceIdenticalTraces checks num/(n·den) == 1 for a flat row.
func TestSemblanceIdenticalTraces(t *testing.T) {
	row := []float64{0.7, 0.7, 0.7, 0.7, 0.7}
	num, den := coherency.Semblance{MinLive: 1}.Reduce(row)
	assert.InDelta(t, 1.0, num/(float64(len(row))*den), tol)

	num, den = coherency.NormalizedStackedAmplitude{}.Reduce(row)
	assert.InDelta(t, 1.0, num/den, tol)
}

// TestByName covers selector resolution and parameter validation.
func TestByName(t *testing.T) {
	f, err := coherency.ByName(coherency.NameStackedAmplitude, 0.25, 0)
	require.NoError(t, err)
	assert.Equal(t, coherency.StackedAmplitude{S: 0.25}, f)

	f, err = coherency.ByName(coherency.NameWeightedSemblance, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, coherency.WeightedSemblance{S: 1, MinLive: 3}, f)

	for _, name := range coherency.Names() {
		f, err := coherency.ByName(name, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, name, f.Name())
	}

	_, err = coherency.ByName("stack", 0, 0)
	require.ErrorIs(t, err, coherency.ErrUnknownFormula)

	for _, s := range []float64{-0.1, 1.5, nan} {
		_, err = coherency.ByName(coherency.NameSemblance, s, 0)
		require.ErrorIs(t, err, coherency.ErrBadParameter)
	}
	_, err = coherency.ByName(coherency.NameSemblance, 0, -1)
	require.ErrorIs(t, err, coherency.ErrBadParameter)
}

// TestNamesSorted checks the listing is stable and complete.
func TestNamesSorted(t *testing.T) {
	names := coherency.Names()
	require.Len(t, names, 6)
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, coherency.NameEnergyNormalizedCrossCorrelation)
}
