// Package matrix offers the dense numeric storage used by the velocity
// analysis packages.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 buffer with safe accessors (At/Set return
//     errors instead of panicking) and raw row views for hot kernels.
//   - Transpose, used to build samples-major views of trace-major gathers.
//   - Checksum, a bit-exact fingerprint used to assert reproducibility of
//     parallel computations.
//   - ValidateNotNil, which also rejects a typed nil stored in the interface.
//
// Unlike a general linear-algebra container, Dense stores NaN freely: in
// seismic buffers NaN marks a sample that lies outside the recorded window
// and must stay distinguishable from a genuine zero amplitude.
//
// See the semblance package example for a typical use.
package matrix
