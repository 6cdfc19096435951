// Package nmo implements moveout primitives on seismic gathers.
//
// 🚀 What is here?
//
//	Hodograph: sample a samples-major seismogram along the hyperbola
//	           t(l) = sqrt(t0² + l²/v²) for every trace (no interpolation,
//	           the arrival time is truncated to a sample index).
//	ApplyNMO:  normal-moveout correct a whole gather with a per-sample
//	           velocity curve; cells falling outside the record are NaN.
//	ApplyLMO:  shift every trace by an integer number of samples, filling
//	           vacated cells with a caller-chosen value.
//
// Hodograph is the kernel shared with the semblance package: it performs no
// validation, no allocation and never fails. ApplyNMO and ApplyLMO validate
// their inputs once and return fresh matrices; the input is never mutated.
//
// Units: times in ms, offsets in m, Hodograph velocity in m/ms, ApplyNMO
// velocities in m/s.
package nmo
