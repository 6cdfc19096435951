// SPDX-License-Identifier: MIT

package semblance

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/katalvlaran/velan/gather"
	"github.com/katalvlaran/velan/matrix"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

const opNewVerticalMap = "NewVerticalMap"

// VerticalMap is a coherency map over the full time range and a dense
// velocity grid. It is computed eagerly by NewVerticalMap and never changes.
type VerticalMap struct {
	coherency  *matrix.Dense // n_samples × n_velocities
	times      []float64     // ms
	velocities []float64     // m/s
	formula    string
	window     int
}

// NewVerticalMap computes the coherency of g for every candidate velocity.
// MAIN DESCRIPTION:
//   - One engine column per velocity over [0, n_samples), computed in
//     parallel (errgroup, WithWorkers bound) into a preallocated matrix.
//
// Implementation:
//   - Stage 1: validate gather, velocities (non-empty, finite, > 0) and options.
//   - Stage 2: allocate the (n_samples × n_velocities) output.
//   - Stage 3: parallelFor over velocity indices; each writes its own column.
//   - Stage 4: log a Debug summary.
//
// Inputs:
//   - g          : validated gather.
//   - velocities : candidate stacking velocities in m/s, any order.
//
// Errors:
//   - ErrNilGather, ErrEmptyVelocities, ErrNonPositiveVelocity and option errors.
//
// Complexity:
//   - Time O(n_velocities · n_samples · (n_traces + window)), Space O(n_samples · n_velocities).
func NewVerticalMap(g *gather.Gather, velocities []float64, opts ...Option) (*VerticalMap, error) {
	if g == nil {
		return nil, semblanceErrorf(opNewVerticalMap, ErrNilGather)
	}
	if len(velocities) == 0 {
		return nil, semblanceErrorf(opNewVerticalMap, ErrEmptyVelocities)
	}
	for _, v := range velocities {
		if !(v > 0) || math.IsInf(v, 0) {
			return nil, semblanceErrorf(opNewVerticalMap, ErrNonPositiveVelocity)
		}
	}
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, semblanceErrorf(opNewVerticalMap, err)
	}

	started := time.Now()
	nSamples, nVel := g.NSamples(), len(velocities)
	out, err := matrix.NewDense(nSamples, nVel)
	if err != nil {
		return nil, semblanceErrorf(opNewVerticalMap, err)
	}

	e := newEngine(g, o.formula, o.window)
	parallelFor(o.workers, nVel, func(i int) {
		e.column(out, i, velocities[i]/1000, 0, nSamples)
	})

	o.logger.Debug("vertical coherency map computed",
		zap.Int("samples", nSamples),
		zap.Int("traces", g.NTraces()),
		zap.Int("velocities", nVel),
		zap.String("formula", o.formula.Name()),
		zap.Int("window", o.window),
		zap.Int("workers", o.workers),
		zap.String("buffer", humanize.Bytes(uint64(8*nSamples*nVel))),
		zap.Duration("elapsed", time.Since(started)),
	)

	return &VerticalMap{
		coherency:  out,
		times:      g.Times(),
		velocities: append([]float64(nil), velocities...),
		formula:    o.formula.Name(),
		window:     o.window,
	}, nil
}

// Coherency returns a defensive copy of the map (n_samples × n_velocities).
func (m *VerticalMap) Coherency() *matrix.Dense { return m.coherency.Copy() }

// At returns the coherency at sample t, velocity index v.
func (m *VerticalMap) At(t, v int) (float64, error) { return m.coherency.At(t, v) }

// Shape returns (n_samples, n_velocities).
func (m *VerticalMap) Shape() (int, int) { return m.coherency.Shape() }

// Times returns a copy of the sample times (ms).
func (m *VerticalMap) Times() []float64 { return append([]float64(nil), m.times...) }

// Velocities returns a copy of the candidate grid (m/s).
func (m *VerticalMap) Velocities() []float64 { return append([]float64(nil), m.velocities...) }

// Formula returns the name of the formula the map was computed with.
func (m *VerticalMap) Formula() string { return m.formula }

// Window returns the smoothing half-width in samples.
func (m *VerticalMap) Window() int { return m.window }

// Checksum returns the xxh3 fingerprint of the map bits.
func (m *VerticalMap) Checksum() uint64 { return m.coherency.Checksum() }

// MaxPerTime returns, for every time sample, the largest coherency across velocities.
// Complexity: O(n_samples · n_velocities).
func (m *VerticalMap) MaxPerTime() []float64 {
	out := make([]float64, m.coherency.Rows())
	for t := range out {
		out[t] = floats.Max(m.coherency.RawRowView(t))
	}

	return out
}

// maxSpan returns max over rows of (max(row) - min(row)).
func (m *VerticalMap) maxSpan() float64 {
	span := 0.0
	var row []float64
	for t := 0; t < m.coherency.Rows(); t++ {
		row = m.coherency.RawRowView(t)
		span = math.Max(span, floats.Max(row)-floats.Min(row))
	}

	return span
}

// Leakage compares the maximal per-time energy swing of m against other:
//
//	max_t(max_v m - min_v m) / (max_t(max_v other - min_v other) + 1e-11)
//
// A value near 1 means comparable swing; values ≫ 1 flag coherent energy in
// m that other lacks (e.g. m computed on a difference gather).
// Complexity: O(n_samples · n_velocities) for both maps.
func (m *VerticalMap) Leakage(other *VerticalMap) float64 {
	return m.maxSpan() / (other.maxSpan() + LeakageEpsilon)
}
