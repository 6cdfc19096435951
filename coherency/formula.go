// SPDX-License-Identifier: MIT

package coherency

import (
	"fmt"
	"math"
	"sort"
)

// Formula is a pluggable numerator/denominator reduction over one corrected row.
//
// Implementations must be pure (no state mutated by Reduce) so that a single
// value can be shared by every goroutine of a coherency computation.
type Formula interface {
	// Name returns the canonical selector (see Names).
	Name() string

	// Reduce returns (numerator, denominator) for one row; NaN entries are absent.
	// It never fails; an all-NaN row produces finite (usually zero) results.
	Reduce(row []float64) (numerator, denominator float64)
}

// Formula names accepted by ByName.
const (
	NameStackedAmplitude                 = "stacked_amplitude"
	NameNormalizedStackedAmplitude       = "normalized_stacked_amplitude"
	NameSemblance                        = "semblance"
	NameWeightedSemblance                = "weighted_semblance"
	NameCrossCorrelation                 = "crosscorrelation"
	NameEnergyNormalizedCrossCorrelation = "energy_normalized_crosscorrelation"
)

// Compile-time assertions.
var (
	_ Formula = StackedAmplitude{}
	_ Formula = NormalizedStackedAmplitude{}
	_ Formula = Semblance{}
	_ Formula = WeightedSemblance{}
	_ Formula = CrossCorrelation{}
	_ Formula = EnergyNormalizedCrossCorrelation{}
)

// StackedAmplitude scales the stack by alpha = (1-S)/sqrt(n) + S/n.
// S = 0 gives the √n-normalized stack, S = 1 the mean.
type StackedAmplitude struct {
	S float64 // mixing coefficient in [0,1]
}

// Name implements Formula.
func (StackedAmplitude) Name() string { return NameStackedAmplitude }

// Reduce implements Formula: (Σx·alpha, 1).
func (f StackedAmplitude) Reduce(row []float64) (float64, float64) {
	m := RowMoments(row)

	return m.Sum * mixing(f.S, m.Live), 1
}

// NormalizedStackedAmplitude is |Σx| / Σ|x|.
type NormalizedStackedAmplitude struct{}

// Name implements Formula.
func (NormalizedStackedAmplitude) Name() string { return NameNormalizedStackedAmplitude }

// Reduce implements Formula: (|Σx|, Σ|x|).
func (NormalizedStackedAmplitude) Reduce(row []float64) (float64, float64) {
	m := RowMoments(row)

	return math.Abs(m.Sum), m.AbsSum
}

// Semblance is the classic (Σx)² / Σx² ratio. Rows with fewer than MinLive
// live traces contribute a zero numerator.
type Semblance struct {
	MinLive int // minimum live-trace count; values ≤ 1 disable the gate
}

// Name implements Formula.
func (Semblance) Name() string { return NameSemblance }

// Reduce implements Formula: ((Σx)²·gate, Σx²).
func (f Semblance) Reduce(row []float64) (float64, float64) {
	m := RowMoments(row)
	if m.Live < f.MinLive {
		return 0, m.SqSum
	}

	return m.Sum * m.Sum, m.SqSum
}

// WeightedSemblance is Semblance with the stacked-amplitude mixing weight
// alpha applied to the numerator (alpha forced to 0 below MinLive).
type WeightedSemblance struct {
	S       float64 // mixing coefficient in [0,1]
	MinLive int     // minimum live-trace count
}

// Name implements Formula.
func (WeightedSemblance) Name() string { return NameWeightedSemblance }

// Reduce implements Formula: ((Σx)²·alpha, Σx²).
func (f WeightedSemblance) Reduce(row []float64) (float64, float64) {
	m := RowMoments(row)
	alpha := mixing(f.S, m.Live)
	if m.Live < f.MinLive {
		alpha = 0
	}

	return m.Sum * m.Sum * alpha, m.SqSum
}

// CrossCorrelation is the sum of pairwise products: ((Σx)² - Σx²)/2.
type CrossCorrelation struct{}

// Name implements Formula.
func (CrossCorrelation) Name() string { return NameCrossCorrelation }

// Reduce implements Formula: (((Σx)² - Σx²)/2, 1).
func (CrossCorrelation) Reduce(row []float64) (float64, float64) {
	m := RowMoments(row)

	return (m.Sum*m.Sum - m.SqSum) / 2, 1
}

// EnergyNormalizedCrossCorrelation normalizes the pairwise products by the row energy.
// Rows with fewer than two live traces yield a zero numerator.
type EnergyNormalizedCrossCorrelation struct{}

// Name implements Formula.
func (EnergyNormalizedCrossCorrelation) Name() string { return NameEnergyNormalizedCrossCorrelation }

// Reduce implements Formula: (2((Σx)² - Σx²)/(n-1), Σx²).
func (EnergyNormalizedCrossCorrelation) Reduce(row []float64) (float64, float64) {
	m := RowMoments(row)
	if m.Live < 2 {
		// (Σx)² - Σx² is exactly 0 for one live trace; avoid 0/0 and -0/-1.
		return 0, m.SqSum
	}

	return 2 * (m.Sum*m.Sum - m.SqSum) / float64(m.Live-1), m.SqSum
}

// ByName resolves a formula selector with its parameters.
// MAIN DESCRIPTION:
//   - s is the mixing coefficient (stacked_amplitude, weighted_semblance),
//     minLive the live-trace threshold (semblance, weighted_semblance);
//     formulas that do not use a parameter ignore it.
//
// Errors:
//   - ErrUnknownFormula for an unlisted name.
//   - ErrBadParameter for s outside [0,1] or NaN, or minLive < 0.
func ByName(name string, s float64, minLive int) (Formula, error) {
	if math.IsNaN(s) || s < 0 || s > 1 || minLive < 0 {
		return nil, fmt.Errorf("coherency.ByName(%q, s=%g, minLive=%d): %w", name, s, minLive, ErrBadParameter)
	}
	switch name {
	case NameStackedAmplitude:
		return StackedAmplitude{S: s}, nil
	case NameNormalizedStackedAmplitude:
		return NormalizedStackedAmplitude{}, nil
	case NameSemblance:
		return Semblance{MinLive: minLive}, nil
	case NameWeightedSemblance:
		return WeightedSemblance{S: s, MinLive: minLive}, nil
	case NameCrossCorrelation:
		return CrossCorrelation{}, nil
	case NameEnergyNormalizedCrossCorrelation:
		return EnergyNormalizedCrossCorrelation{}, nil
	default:
		return nil, fmt.Errorf("coherency.ByName(%q): %w", name, ErrUnknownFormula)
	}
}

// Names returns every selector accepted by ByName, sorted.
func Names() []string {
	out := []string{
		NameStackedAmplitude,
		NameNormalizedStackedAmplitude,
		NameSemblance,
		NameWeightedSemblance,
		NameCrossCorrelation,
		NameEnergyNormalizedCrossCorrelation,
	}
	sort.Strings(out)

	return out
}
