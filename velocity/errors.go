// SPDX-License-Identifier: MIT

package velocity

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewPoints indicates a curve with fewer than two picks.
	ErrTooFewPoints = errors.New("velocity: curve needs at least two points")

	// ErrTimesNotIncreasing indicates pick times are not strictly increasing.
	ErrTimesNotIncreasing = errors.New("velocity: curve times must be strictly increasing")

	// ErrNonPositiveVelocity indicates a zero, negative or non-finite velocity.
	ErrNonPositiveVelocity = errors.New("velocity: velocities must be finite and > 0")

	// ErrLengthMismatch indicates parallel slices of different lengths.
	ErrLengthMismatch = errors.New("velocity: times and velocities differ in length")

	// ErrEmptyGrid indicates a grid request with no points or a bad range.
	ErrEmptyGrid = errors.New("velocity: grid must have at least one point and min <= max")

	// ErrGridNotIncreasing indicates a grid that is not strictly increasing.
	ErrGridNotIncreasing = errors.New("velocity: grid must be strictly increasing")
)

// velocityErrorf wraps a sentinel with the operation tag.
func velocityErrorf(tag string, err error) error {
	return fmt.Errorf("velocity.%s: %w", tag, err)
}
