// Package coherency defines the numerator/denominator formulas used to
// measure how well NMO-corrected trace amplitudes agree.
//
// Every formula reduces ONE corrected time row (one value per trace, NaN for
// samples outside the record) into a (numerator, denominator) pair. The
// semblance package sums these pairs over a sliding time window and divides:
//
//	ratio = Σ numerator / (n_traces · Σ denominator + ε)
//
// Available formulas (Name() in parentheses):
//
//   - StackedAmplitude                  (stacked_amplitude)
//   - NormalizedStackedAmplitude        (normalized_stacked_amplitude)
//   - Semblance                         (semblance)
//   - WeightedSemblance                 (weighted_semblance)
//   - CrossCorrelation                  (crosscorrelation)
//   - EnergyNormalizedCrossCorrelation  (energy_normalized_crosscorrelation)
//
// NaN policy: every reduction skips NaN entries (they are absent, not zero)
// and accumulates strictly left to right, so results are bit-identical no
// matter how callers partition rows across goroutines.
package coherency
