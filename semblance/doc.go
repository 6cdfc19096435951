// Package semblance computes velocity-coherency maps of seismic gathers.
//
// 🚀 What is a coherency map?
//
//	For every zero-offset time t0 and candidate velocity v, the gather is
//	sampled along the hyperbola t(l) = sqrt(t0² + l²/v²) and a coherency
//	formula measures how well the traces agree. A ±window sample smoothing
//	turns the per-row (numerator, denominator) pairs into one ratio:
//
//	    ratio(t, v) = Σ_{|k-t|≤w} num(k, v) / (n_traces · Σ_{|k-t|≤w} den(k, v) + 1e-6)
//
// ✨ Maps:
//   - VerticalMap: every sample × every candidate velocity (dense grid).
//   - ResidualMap: only a ±deviation band around a picked velocity curve,
//     rectangularized to a common width so it can be displayed as an image.
//
// ⚙️ Usage:
//
//	g, _ := gather.New(data, times, offsets)
//	grid, _ := velocity.LinearGrid(1500, 5500, 201)
//	vm, err := semblance.NewVerticalMap(g, grid,
//	    semblance.WithWindow(8),
//	    semblance.WithFormula(coherency.Semblance{}),
//	    semblance.WithLogger(logger))
//	m := vm.Coherency() // defensive copy, n_samples × n_velocities
//
// Determinism:
//
//	Work is split across goroutines by velocity column (errgroup with a
//	bounded worker count). Every column is computed by exactly one goroutine
//	with a fixed summation order, so maps are bit-identical for any worker
//	count (see Checksum).
//
// Units: times in ms, offsets in m, velocities in m/s at the API; window
// is a half-width in SAMPLES.
package semblance
