// SPDX-License-Identifier: MIT

package velocity

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	opLinearGrid   = "LinearGrid"
	opResidualGrid = "ResidualGrid"
	opValidateGrid = "ValidateGrid"
)

// LinearGrid returns n evenly spaced velocities from lo to hi inclusive.
// n == 1 yields [lo] (lo must equal hi in that case to be meaningful).
// Errors: ErrEmptyGrid, ErrNonPositiveVelocity.
// Complexity: O(n).
func LinearGrid(lo, hi float64, n int) ([]float64, error) {
	if n < 1 || !(lo <= hi) {
		return nil, velocityErrorf(opLinearGrid, ErrEmptyGrid)
	}
	if !(lo > 0) || math.IsInf(hi, 0) {
		return nil, velocityErrorf(opLinearGrid, ErrNonPositiveVelocity)
	}
	if n == 1 {
		return []float64{lo}, nil
	}

	return floats.Span(make([]float64, n), lo, hi), nil
}

// ResidualGrid builds the candidate grid around a picked curve:
// n points spanning [min(v)*(1-margin), max(v)*(1+margin)] where v is the
// curve evaluated at times (clipped to be positive).
// MAIN DESCRIPTION:
//   - The usual grid for residual coherency: wide enough that every
//     ±margin band around the curve falls inside it.
//
// Errors:
//   - ErrEmptyGrid when n < 1, times empty or margin outside [0,1).
//
// Complexity:
//   - Time O(len(times)·log k + n).
func ResidualGrid(c *Curve, times []float64, n int, margin float64) ([]float64, error) {
	if c == nil || len(times) == 0 || n < 1 || margin < 0 || margin >= 1 || math.IsNaN(margin) {
		return nil, velocityErrorf(opResidualGrid, ErrEmptyGrid)
	}
	v := c.AtTimes(times)
	lo, hi := floats.Min(v), floats.Max(v)
	if !(lo > 0) {
		return nil, velocityErrorf(opResidualGrid, ErrNonPositiveVelocity)
	}

	return LinearGrid(lo*(1-margin), hi*(1+margin), n)
}

// ValidateGrid checks a candidate grid: non-empty, finite, positive.
// When increasing is true it must also be strictly increasing.
func ValidateGrid(grid []float64, increasing bool) error {
	if len(grid) == 0 {
		return velocityErrorf(opValidateGrid, ErrEmptyGrid)
	}
	for i, v := range grid {
		if !(v > 0) || math.IsInf(v, 0) {
			return velocityErrorf(opValidateGrid, ErrNonPositiveVelocity)
		}
		if increasing && i > 0 && v <= grid[i-1] {
			return velocityErrorf(opValidateGrid, ErrGridNotIncreasing)
		}
	}

	return nil
}

// Nearest returns the index of the grid value closest to v.
// Ties resolve to the first matching index. grid must be non-empty.
// Complexity: O(len(grid)).
func Nearest(grid []float64, v float64) int {
	best, bestDist := 0, math.Abs(grid[0]-v)
	for i := 1; i < len(grid); i++ {
		if d := math.Abs(grid[i] - v); d < bestDist {
			best, bestDist = i, d
		}
	}

	return best
}

// Clip limits v to [lo, hi].
func Clip(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
