// SPDX-License-Identifier: MIT

package semblance

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/katalvlaran/velan/gather"
	"github.com/katalvlaran/velan/matrix"
	"github.com/katalvlaran/velan/velocity"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

const opNewResidualMap = "NewResidualMap"

// ResidualMap is a coherency map restricted to a ±deviation velocity band
// around a picked curve, resampled to a common band width per time sample.
type ResidualMap struct {
	coherency  *matrix.Dense // n_samples × width
	left       []int         // grid index of curve·(1-d) per sample
	right      []int         // grid index of curve·(1+d) per sample
	times      []float64     // ms
	velocities []float64     // m/s, strictly increasing
	deviation  float64
	formula    string
	window     int
}

// NewResidualMap computes residual coherency of g around curve.
// MAIN DESCRIPTION:
//   - Bounds: the curve is evaluated at every sample time (extrapolated outside
//     its picks), clipped to [grid[0], grid[n-1]] and mapped to the nearest grid
//     indices of v·(1-d) and v·(1+d).
//   - Columns: every grid index touched by some band is computed once over the
//     time range where the band can reach it (first t with right==v up to last
//     t with left==v), in parallel over indices.
//   - Rectangularization: each row's band stretch scratch[t, left..right] is
//     linearly resampled onto the widest band's point count.
//
// Implementation:
//   - Stage 1: validate gather, curve, grid (strictly increasing) and options.
//   - Stage 2: bounds.
//   - Stage 3: per-index time ranges → parallel engine columns into scratch.
//   - Stage 4: parallel per-row resampling into the final matrix.
//
// Inputs:
//   - g        : validated gather.
//   - curve    : picked velocity trend (m/s).
//   - grid     : strictly increasing candidate velocities (m/s); see velocity.ResidualGrid.
//
// Errors:
//   - ErrNilGather, ErrNilCurve, ErrEmptyVelocities, ErrNonPositiveVelocity,
//     ErrGridNotIncreasing and option errors.
//
// Determinism:
//   - Column and row tasks write disjoint cells; fixed in-task orders.
//
// Complexity:
//   - Time O(n_samples · (n_grid + touched·(n_traces + window))), Space O(n_samples · n_grid).
func NewResidualMap(g *gather.Gather, curve *velocity.Curve, grid []float64, opts ...Option) (*ResidualMap, error) {
	if g == nil {
		return nil, semblanceErrorf(opNewResidualMap, ErrNilGather)
	}
	if curve == nil {
		return nil, semblanceErrorf(opNewResidualMap, ErrNilCurve)
	}
	if err := validateResidualGrid(grid); err != nil {
		return nil, semblanceErrorf(opNewResidualMap, err)
	}
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, semblanceErrorf(opNewResidualMap, err)
	}

	started := time.Now()
	nSamples, nVel := g.NSamples(), len(grid)
	times := g.Times()

	// Stage 2: bounds.
	left, right := bandBounds(curve, times, grid, o.deviation)

	// Stage 3: engine columns over the touched indices.
	scratch, err := matrix.NewDense(nSamples, nVel)
	if err != nil {
		return nil, semblanceErrorf(opNewResidualMap, err)
	}
	cols := touchedRanges(left, right, nVel)
	e := newEngine(g, o.formula, o.window)
	parallelFor(o.workers, len(cols), func(i int) {
		c := cols[i]
		e.column(scratch, c.index, grid[c.index]/1000, c.tMin, c.tMax+1)
	})

	// Stage 4: rectangularization.
	width := 0
	for t := range left {
		width = max(width, right[t]-left[t]+1)
	}
	out, err := matrix.NewDense(nSamples, width)
	if err != nil {
		return nil, semblanceErrorf(opNewResidualMap, err)
	}
	parallelFor(o.workers, nSamples, func(t int) {
		resampleStretch(out.RawRowView(t), scratch.RawRowView(t)[left[t]:right[t]+1])
	})

	o.logger.Debug("residual coherency map computed",
		zap.Int("samples", nSamples),
		zap.Int("traces", g.NTraces()),
		zap.Int("grid", nVel),
		zap.Int("columns", len(cols)),
		zap.Int("width", width),
		zap.Float64("deviation", o.deviation),
		zap.String("formula", o.formula.Name()),
		zap.Int("window", o.window),
		zap.Int("workers", o.workers),
		zap.String("buffer", humanize.Bytes(uint64(8*nSamples*(nVel+width)))),
		zap.Duration("elapsed", time.Since(started)),
	)

	return &ResidualMap{
		coherency:  out,
		left:       left,
		right:      right,
		times:      times,
		velocities: append([]float64(nil), grid...),
		deviation:  o.deviation,
		formula:    o.formula.Name(),
		window:     o.window,
	}, nil
}

// validateResidualGrid maps velocity.ValidateGrid failures onto semblance sentinels.
func validateResidualGrid(grid []float64) error {
	if len(grid) == 0 {
		return ErrEmptyVelocities
	}
	if err := velocity.ValidateGrid(grid, false); err != nil {
		return ErrNonPositiveVelocity
	}
	if err := velocity.ValidateGrid(grid, true); err != nil {
		return ErrGridNotIncreasing
	}

	return nil
}

// bandBounds returns per-sample nearest grid indices of curve·(1-d) and curve·(1+d).
// The curve is clipped to the grid range before scaling. Ties resolve to the
// lower index (velocity.Nearest).
// Complexity: O(n_samples · n_grid).
func bandBounds(curve *velocity.Curve, times, grid []float64, d float64) (left, right []int) {
	lo, hi := grid[0], grid[len(grid)-1]
	left = make([]int, len(times))
	right = make([]int, len(times))
	var v float64
	for t, tm := range times {
		v = velocity.Clip(curve.At(tm), lo, hi)
		left[t] = velocity.Nearest(grid, v*(1-d))
		right[t] = velocity.Nearest(grid, v*(1+d))
	}

	return left, right
}

// columnRange is the inclusive time range [tMin, tMax] computed for one grid index.
type columnRange struct {
	index      int
	tMin, tMax int
}

// touchedRanges lists, in ascending index order, every grid index covered by
// some [left[t], right[t]] together with its time range:
//   - tMin = first t with right[t] == index, else 0;
//   - tMax = last t with left[t] == index, else n_samples-1.
//
// Indices whose range is empty (tMin > tMax, only possible for curves that
// decrease in time) are skipped.
// Complexity: O(n_samples · band width + n_grid).
func touchedRanges(left, right []int, nVel int) []columnRange {
	nSamples := len(left)
	touched := make([]bool, nVel)
	firstRight := make([]int, nVel)
	lastLeft := make([]int, nVel)
	for v := range firstRight {
		firstRight[v] = -1
		lastLeft[v] = -1
	}
	for t := 0; t < nSamples; t++ {
		for v := left[t]; v <= right[t]; v++ {
			touched[v] = true
		}
		if firstRight[right[t]] < 0 {
			firstRight[right[t]] = t
		}
		lastLeft[left[t]] = t
	}

	out := make([]columnRange, 0, nVel)
	for v := 0; v < nVel; v++ {
		if !touched[v] {
			continue
		}
		c := columnRange{index: v, tMin: 0, tMax: nSamples - 1}
		if firstRight[v] >= 0 {
			c.tMin = firstRight[v]
		}
		if lastLeft[v] >= 0 {
			c.tMax = lastLeft[v]
		}
		if c.tMin > c.tMax {
			continue
		}
		out = append(out, c)
	}

	return out
}

// resampleStretch linearly resamples src (k ≥ 1 points) onto len(dst) points
// spanning the same extent; k == 1 fills dst with the single value.
// Complexity: O(len(dst) · log k).
func resampleStretch(dst, src []float64) {
	k, w := len(src), len(dst)
	if k == 1 {
		for j := range dst {
			dst[j] = src[0]
		}
		return
	}
	xs := floats.Span(make([]float64, k), 0, float64(k-1))
	var pl interp.PiecewiseLinear
	// xs is strictly increasing and k ≥ 2, so Fit cannot fail.
	_ = pl.Fit(xs, src)
	if w == 1 {
		dst[0] = src[0]
		return
	}
	at := floats.Span(make([]float64, w), 0, float64(k-1))
	for j, x := range at {
		dst[j] = pl.Predict(x)
	}
}

// Coherency returns a defensive copy of the rectangularized map (n_samples × width).
func (m *ResidualMap) Coherency() *matrix.Dense { return m.coherency.Copy() }

// At returns the coherency at sample t, band position j.
func (m *ResidualMap) At(t, j int) (float64, error) { return m.coherency.At(t, j) }

// Shape returns (n_samples, width).
func (m *ResidualMap) Shape() (int, int) { return m.coherency.Shape() }

// Bounds returns copies of the per-sample left/right grid indices.
func (m *ResidualMap) Bounds() (left, right []int) {
	return append([]int(nil), m.left...), append([]int(nil), m.right...)
}

// Times returns a copy of the sample times (ms).
func (m *ResidualMap) Times() []float64 { return append([]float64(nil), m.times...) }

// Velocities returns a copy of the candidate grid (m/s).
func (m *ResidualMap) Velocities() []float64 { return append([]float64(nil), m.velocities...) }

// Deviation returns the relative band half-width d.
func (m *ResidualMap) Deviation() float64 { return m.deviation }

// Formula returns the name of the formula the map was computed with.
func (m *ResidualMap) Formula() string { return m.formula }

// Window returns the smoothing half-width in samples.
func (m *ResidualMap) Window() int { return m.window }

// Checksum returns the xxh3 fingerprint of the map bits.
func (m *ResidualMap) Checksum() uint64 { return m.coherency.Checksum() }
