// SPDX-License-Identifier: MIT

package gather

import (
	"math"
	"strconv"
	"sync"

	"github.com/katalvlaran/velan/matrix"
)

// uniformTol is the relative tolerance on the sample step.
const uniformTol = 1e-6

// Gather is an immutable seismic gather. Construct it with New.
type Gather struct {
	data    *matrix.Dense // n_traces × n_samples, owned copy
	times   []float64     // ms, len n_samples
	offsets []float64     // m, len n_traces
	rate    float64       // ms per sample

	once       sync.Once
	transposed *matrix.Dense // n_samples × n_traces, built on first use
}

// New validates and copies the inputs into a Gather.
// MAIN DESCRIPTION:
//   - Single validation point for every input-shape contract of the analysis.
//
// Implementation:
//   - Stage 1: data non-nil with ≥1 trace and ≥2 samples.
//   - Stage 2: offsets length and finiteness.
//   - Stage 3: times length, finiteness, strict increase, uniform step.
//   - Stage 4: copy everything (the gather never aliases caller memory).
//
// Errors:
//   - ErrEmptyGather, ErrOffsetsMismatch, ErrTimesMismatch, ErrNonFinite,
//     ErrTimesNotIncreasing, ErrTimesNotUniform (all wrapped; match with errors.Is).
//
// Complexity:
//   - Time O(n_traces*n_samples), Space O(n_traces*n_samples).
func New(data *matrix.Dense, times, offsets []float64) (*Gather, error) {
	if data == nil || data.Rows() < 1 || data.Cols() < 2 {
		return nil, gatherErrorf("shape", ErrEmptyGather)
	}
	nTraces, nSamples := data.Shape()

	if len(offsets) != nTraces {
		return nil, gatherErrorf("offsets="+strconv.Itoa(len(offsets))+" traces="+strconv.Itoa(nTraces), ErrOffsetsMismatch)
	}
	for i, l := range offsets {
		if math.IsNaN(l) || math.IsInf(l, 0) {
			return nil, gatherErrorf("offset "+strconv.Itoa(i), ErrNonFinite)
		}
	}

	if len(times) != nSamples {
		return nil, gatherErrorf("times="+strconv.Itoa(len(times))+" samples="+strconv.Itoa(nSamples), ErrTimesMismatch)
	}
	if err := validateTimes(times); err != nil {
		return nil, err
	}

	g := &Gather{
		data:    data.Copy(),
		times:   append([]float64(nil), times...),
		offsets: append([]float64(nil), offsets...),
		rate:    times[1] - times[0],
	}

	return g, nil
}

// FromRows is a convenience constructor over a [][]float64 of traces.
func FromRows(traces [][]float64, times, offsets []float64) (*Gather, error) {
	if len(traces) == 0 {
		return nil, gatherErrorf("shape", ErrEmptyGather)
	}
	d, err := matrix.NewDenseRows(traces)
	if err != nil {
		return nil, gatherErrorf("traces", err)
	}

	return New(d, times, offsets)
}

// validateTimes checks finiteness, strict increase and a uniform step.
func validateTimes(times []float64) error {
	for i, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return gatherErrorf("time "+strconv.Itoa(i), ErrNonFinite)
		}
	}
	step := times[1] - times[0]
	if step <= 0 {
		return gatherErrorf("time 1", ErrTimesNotIncreasing)
	}
	for i := 1; i < len(times); i++ {
		d := times[i] - times[i-1]
		if d <= 0 {
			return gatherErrorf("time "+strconv.Itoa(i), ErrTimesNotIncreasing)
		}
		if math.Abs(d-step) > uniformTol*step {
			return gatherErrorf("time "+strconv.Itoa(i), ErrTimesNotUniform)
		}
	}

	return nil
}

// NTraces returns the number of traces.
func (g *Gather) NTraces() int { return g.data.Rows() }

// NSamples returns the number of samples per trace.
func (g *Gather) NSamples() int { return g.data.Cols() }

// SampleRate returns times[1]-times[0] in milliseconds.
func (g *Gather) SampleRate() float64 { return g.rate }

// Times returns a copy of the sample times (ms).
func (g *Gather) Times() []float64 { return append([]float64(nil), g.times...) }

// Offsets returns a copy of the offsets (m).
func (g *Gather) Offsets() []float64 { return append([]float64(nil), g.offsets...) }

// Data returns a copy of the trace-major amplitudes.
func (g *Gather) Data() *matrix.Dense { return g.data.Copy() }

// RawTimes returns the internal times slice. Callers must not modify it.
func (g *Gather) RawTimes() []float64 { return g.times }

// RawOffsets returns the internal offsets slice. Callers must not modify it.
func (g *Gather) RawOffsets() []float64 { return g.offsets }

// RawData returns the internal trace-major matrix. Callers must not modify it.
func (g *Gather) RawData() *matrix.Dense { return g.data }

// Transposed returns the samples-major view (n_samples × n_traces).
// MAIN DESCRIPTION:
//   - Built once on first call (sync.Once) and shared afterwards; safe for
//     concurrent readers. Callers must not modify it.
//
// Complexity:
//   - First call O(n_traces*n_samples); later calls O(1).
func (g *Gather) Transposed() *matrix.Dense {
	g.once.Do(func() {
		// Transpose cannot fail on a validated non-nil Dense.
		g.transposed, _ = matrix.Transpose(g.data)
	})

	return g.transposed
}
