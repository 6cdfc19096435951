// SPDX-License-Identifier: MIT

package nmo

import (
	"math"

	"github.com/katalvlaran/velan/gather"
	"github.com/katalvlaran/velan/matrix"
)

const (
	opApplyNMO = "ApplyNMO"
	opApplyLMO = "ApplyLMO"
)

// ApplyNMO returns the normal-moveout corrected gather (n_traces × n_samples).
// MAIN DESCRIPTION:
//   - Row t of the corrected samples-major data is Hodograph(times[t], velocities[t]);
//     samples whose hyperbola leaves the record are NaN, so they stay
//     distinguishable from genuine zero amplitudes.
//
// Implementation:
//   - Stage 1: validate velocities (len == n_samples, finite, > 0).
//   - Stage 2: for each time sample run Hodograph into a reusable row buffer.
//   - Stage 3: scatter the row into the trace-major result.
//
// Inputs:
//   - g          : validated gather.
//   - velocities : per-sample stacking velocities, m/s.
//
// Errors:
//   - ErrNilInput, ErrVelocitiesMismatch, ErrNonPositiveVelocity.
//
// Determinism:
//   - Fixed t→trace loop order.
//
// Complexity:
//   - Time O(n_samples*n_traces), Space O(n_samples*n_traces).
func ApplyNMO(g *gather.Gather, velocities []float64) (*matrix.Dense, error) {
	if g == nil {
		return nil, nmoErrorf(opApplyNMO, ErrNilInput)
	}
	nTraces, nSamples := g.NTraces(), g.NSamples()
	if len(velocities) != nSamples {
		return nil, nmoErrorf(opApplyNMO, ErrVelocitiesMismatch)
	}
	for _, v := range velocities {
		if !(v > 0) || math.IsInf(v, 0) {
			return nil, nmoErrorf(opApplyNMO, ErrNonPositiveVelocity)
		}
	}

	seis := g.Transposed()
	times, offsets := g.RawTimes(), g.RawOffsets()
	out, err := matrix.NewDense(nTraces, nSamples)
	if err != nil {
		return nil, nmoErrorf(opApplyNMO, err)
	}

	row := make([]float64, nTraces)
	var t, j int
	for t = 0; t < nSamples; t++ {
		Hodograph(row, seis, times[t], offsets, velocities[t]/1000, times[0], g.SampleRate(), math.NaN())
		for j = 0; j < nTraces; j++ {
			out.RawRowView(j)[t] = row[j]
		}
	}

	return out, nil
}

// ApplyLMO shifts trace i by shifts[i] samples: out[i][k] = data[i][k+shifts[i]].
// MAIN DESCRIPTION:
//   - Positive shifts pull later samples earlier (linear moveout removal);
//     negative shifts push samples later. Cells with no source sample get fill.
//
// Errors:
//   - ErrNilInput, ErrShiftsMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func ApplyLMO(data *matrix.Dense, shifts []int, fill float64) (*matrix.Dense, error) {
	if data == nil {
		return nil, nmoErrorf(opApplyLMO, ErrNilInput)
	}
	nTraces, nSamples := data.Shape()
	if len(shifts) != nTraces {
		return nil, nmoErrorf(opApplyLMO, ErrShiftsMismatch)
	}

	out, err := matrix.NewFilled(nTraces, nSamples, fill)
	if err != nil {
		return nil, nmoErrorf(opApplyLMO, err)
	}

	var i, k, src int
	for i = 0; i < nTraces; i++ {
		in, dst := data.RawRowView(i), out.RawRowView(i)
		for k = 0; k < nSamples; k++ {
			src = k + shifts[i]
			if src < 0 || src >= nSamples {
				continue
			}
			dst[k] = in[src]
		}
	}

	return out, nil
}

// LinearShifts converts a refractor velocity (m/s) into per-trace LMO shifts:
// shift = trunc(|offset| / velocity / sampleRate), velocity in m/s, sampleRate in ms.
func LinearShifts(offsets []float64, velocity, sampleRate float64) []int {
	out := make([]int, len(offsets))
	vms := velocity / 1000
	for i, l := range offsets {
		out[i] = int(math.Abs(l) / vms / sampleRate)
	}

	return out
}
