// SPDX-License-Identifier: MIT

package semblance

import (
	"math"

	"github.com/katalvlaran/velan/coherency"
	"github.com/katalvlaran/velan/gather"
	"github.com/katalvlaran/velan/matrix"
	"github.com/katalvlaran/velan/nmo"
	"golang.org/x/sync/errgroup"
)

// engine is the windowed reduction shared by VerticalMap and ResidualMap.
// Every field is read-only after construction; one engine serves all goroutines.
type engine struct {
	seis    *matrix.Dense // samples-major (n_samples × n_traces)
	times   []float64
	offsets []float64
	rate    float64
	window  int
	formula coherency.Formula
}

// newEngine binds a validated gather to a formula and window.
func newEngine(g *gather.Gather, formula coherency.Formula, window int) *engine {
	return &engine{
		seis:    g.Transposed(),
		times:   g.RawTimes(),
		offsets: g.RawOffsets(),
		rate:    g.SampleRate(),
		window:  window,
		formula: formula,
	}
}

// expand returns the materialized sample range [lo, hi] (inclusive) for a
// requested range [tMin, tMax).
// Invariant: for every t in [tMin, tMax), [t-window, t+window] ∩ [0, n-1] ⊆ [lo, hi].
func (e *engine) expand(tMin, tMax int) (lo, hi int) {
	return max(0, tMin-e.window), min(e.seis.Rows()-1, tMax+e.window)
}

// column computes the coherency of one velocity over [tMin, tMax) into out[:, col].
// MAIN DESCRIPTION:
//   - Materialize NMO-corrected rows for the expanded range, reduce each with
//     the formula, then slide a ±window sum over the (numerator, denominator)
//     vectors.
//
// Implementation:
//   - Stage 1: [lo, hi] = expand(tMin, tMax).
//   - Stage 2: for t in [lo, hi]: Hodograph(times[t], v) → formula.Reduce.
//   - Stage 3: for t in [tMin, tMax): sum num/den over [t-w, t+w] ∩ [lo, hi]
//     and write Σnum / (n_traces·Σden + Epsilon).
//
// Behavior highlights:
//   - NaN fill marks out-of-record samples; formulas skip them.
//   - Only cells (t, col) with t in [tMin, tMax) are written.
//
// Inputs:
//   - out  : destination (n_samples × k); column col is owned by the caller goroutine.
//   - v    : velocity in m/ms.
//
// Determinism:
//   - Window sums run left to right over k; no reassociation.
//
// Complexity:
//   - Time O((hi-lo+1)·n_traces + (tMax-tMin)·window), Space O(hi-lo+1 + n_traces).
func (e *engine) column(out *matrix.Dense, col int, v float64, tMin, tMax int) {
	if tMin >= tMax {
		return
	}
	lo, hi := e.expand(tMin, tMax)
	nTraces := len(e.offsets)

	// Stage 2: materialize numerator/denominator per corrected row.
	num := make([]float64, hi-lo+1)
	den := make([]float64, hi-lo+1)
	row := make([]float64, nTraces)
	fill := math.NaN()
	var t int
	for t = lo; t <= hi; t++ {
		nmo.Hodograph(row, e.seis, e.times[t], e.offsets, v, e.times[0], e.rate, fill)
		num[t-lo], den[t-lo] = e.formula.Reduce(row)
	}

	// Stage 3: windowed ratio.
	scale := float64(nTraces)
	var k, a, b int
	var sn, sd float64
	for t = tMin; t < tMax; t++ {
		a, b = max(lo, t-e.window), min(hi, t+e.window)
		sn, sd = 0, 0
		for k = a; k <= b; k++ {
			sn += num[k-lo]
			sd += den[k-lo]
		}
		out.RawRowView(t)[col] = sn / (scale*sd + Epsilon)
	}
}

// parallelFor runs fn(i) for i in [0, n) on at most workers goroutines.
// Tasks write disjoint outputs, so no ordering between them is needed.
func parallelFor(workers, n int, fn func(i int)) {
	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait() // tasks never fail
}
