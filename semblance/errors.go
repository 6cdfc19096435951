// SPDX-License-Identifier: MIT

package semblance

import (
	"errors"
	"fmt"
)

var (
	// ErrNilGather indicates a nil *gather.Gather.
	ErrNilGather = errors.New("semblance: nil gather")

	// ErrNilCurve indicates a nil *velocity.Curve.
	ErrNilCurve = errors.New("semblance: nil velocity curve")

	// ErrEmptyVelocities indicates an empty candidate grid.
	ErrEmptyVelocities = errors.New("semblance: velocity grid is empty")

	// ErrNonPositiveVelocity indicates a zero, negative or non-finite candidate velocity.
	ErrNonPositiveVelocity = errors.New("semblance: velocities must be finite and > 0")

	// ErrGridNotIncreasing indicates a residual grid that is not strictly increasing.
	ErrGridNotIncreasing = errors.New("semblance: residual grid must be strictly increasing")

	// ErrNegativeWindow indicates a negative window half-width.
	ErrNegativeWindow = errors.New("semblance: window must be >= 0 samples")

	// ErrBadDeviation indicates a relative deviation outside [0, 1).
	ErrBadDeviation = errors.New("semblance: deviation must be in [0, 1)")

	// ErrNilFormula indicates a nil coherency formula.
	ErrNilFormula = errors.New("semblance: nil coherency formula")

	// ErrBadWorkers indicates a worker count < 1.
	ErrBadWorkers = errors.New("semblance: workers must be >= 1")
)

// semblanceErrorf wraps an error with the constructor tag.
func semblanceErrorf(tag string, err error) error {
	return fmt.Errorf("semblance.%s: %w", tag, err)
}
