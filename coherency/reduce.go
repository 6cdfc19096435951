// SPDX-License-Identifier: MIT

package coherency

import "math"

// Moments holds the NaN-skipping sums of one row.
type Moments struct {
	Live   int     // number of non-NaN entries
	Sum    float64 // Σ x
	AbsSum float64 // Σ |x|
	SqSum  float64 // Σ x²
}

// RowMoments computes every sum a formula needs in a single left-to-right pass.
// MAIN DESCRIPTION:
//   - NaN entries are skipped; an all-NaN row yields the zero Moments.
//
// Determinism:
//   - Strict sequential accumulation order (index 0 → n-1). No reassociation,
//     so callers may rely on bit-exact results.
//
// Complexity:
//   - Time O(n), Space O(1).
func RowMoments(row []float64) Moments {
	var m Moments
	for _, x := range row {
		if math.IsNaN(x) {
			continue
		}
		m.Live++
		m.Sum += x
		m.AbsSum += math.Abs(x)
		m.SqSum += x * x
	}

	return m
}

// NaNSum returns Σ x over non-NaN entries, accumulated left to right.
// Complexity: O(n).
func NaNSum(row []float64) float64 {
	var s float64
	for _, x := range row {
		if !math.IsNaN(x) {
			s += x
		}
	}

	return s
}

// CountLive returns the number of non-NaN entries.
// Complexity: O(n).
func CountLive(row []float64) int {
	n := 0
	for _, x := range row {
		if !math.IsNaN(x) {
			n++
		}
	}

	return n
}

// mixing returns alpha = (1-s)/sqrt(n) + s/n with n clamped to ≥ 1.
func mixing(s float64, live int) float64 {
	n := float64(max(live, 1))

	return (1-s)/math.Sqrt(n) + s/n
}
