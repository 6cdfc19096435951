// SPDX-License-Identifier: MIT

package nmo

import (
	"math"

	"github.com/katalvlaran/velan/matrix"
)

// Hodograph fills dst with the amplitudes observed along one hyperbola.
// MAIN DESCRIPTION:
//   - For every trace j: t = sqrt(t0² + (offsets[j]/velocity)²) is converted to
//     a sample index ix = trunc((t - tStart) / sampleRate); dst[j] is the
//     amplitude at seismogram row ix, column j, or fill when ix is outside
//     [0, n_samples).
//
// Implementation:
//   - Stage 1: precompute t0² and 1/velocity.
//   - Stage 2: single pass over traces; one bounds check per trace.
//
// Behavior highlights:
//   - No interpolation between samples (truncation), no allocation, no errors.
//   - Offset 0 always lands on t0 itself, whatever the velocity.
//
// Inputs:
//   - dst        : output, len == n_traces.
//   - seismogram : samples-major matrix (n_samples × n_traces), read-only.
//   - t0         : zero-offset time (ms, same origin as tStart).
//   - offsets    : len == n_traces (m).
//   - velocity   : m/ms, > 0.
//   - tStart     : time of sample 0 (ms).
//   - sampleRate : ms per sample, > 0.
//   - fill       : value for out-of-range samples (NaN in coherency work).
//
// Determinism:
//   - Pure function of its inputs; safe to call concurrently on disjoint dst.
//
// Complexity:
//   - Time O(n_traces), Space O(1).
//
// AI-Hints:
//   - Shapes are NOT validated: callers (semblance, ApplyNMO) validate once.
func Hodograph(dst []float64, seismogram *matrix.Dense, t0 float64, offsets []float64,
	velocity, tStart, sampleRate, fill float64) {
	nSamples := seismogram.Rows()
	t0sq := t0 * t0
	invV := 1 / velocity

	var j, ix int
	var lv, t, pos float64
	for j = 0; j < len(offsets); j++ {
		lv = offsets[j] * invV
		t = math.Sqrt(t0sq + lv*lv)
		pos = (t - tStart) / sampleRate
		// pos < 0 must be caught before truncation maps (-1,0) onto 0.
		if pos < 0 || pos >= float64(nSamples) {
			dst[j] = fill
			continue
		}
		ix = int(pos)
		dst[j] = seismogram.RawRowView(ix)[j]
	}
}
