// Package gather holds a validated common-midpoint (or common-source) gather:
// a trace-major amplitude matrix together with its sample times and source-receiver
// offsets.
//
// All shape checks happen once in New; downstream kernels (nmo, semblance)
// rely on the invariants below and never re-validate:
//
//   - Data is n_traces × n_samples with n_traces ≥ 1 and n_samples ≥ 2.
//   - len(Offsets) == n_traces, every offset finite (order is arbitrary).
//   - len(Times) == n_samples, strictly increasing, uniform step (ms).
//
// The samples-major view (Transposed) is built lazily once and shared by
// every analysis that reads the gather; it is never mutated.
package gather
