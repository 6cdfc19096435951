// SPDX-License-Identifier: MIT

package gather

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyGather indicates a gather without traces or with fewer than two samples.
	ErrEmptyGather = errors.New("gather: gather must have at least one trace and two samples")

	// ErrOffsetsMismatch indicates len(offsets) != number of traces.
	ErrOffsetsMismatch = errors.New("gather: offsets length does not match trace count")

	// ErrTimesMismatch indicates len(times) != number of samples.
	ErrTimesMismatch = errors.New("gather: times length does not match sample count")

	// ErrTimesNotIncreasing indicates times are not strictly increasing.
	ErrTimesNotIncreasing = errors.New("gather: times must be strictly increasing")

	// ErrTimesNotUniform indicates the time step varies beyond tolerance.
	ErrTimesNotUniform = errors.New("gather: times must be uniformly sampled")

	// ErrNonFinite indicates a NaN or ±Inf time or offset.
	ErrNonFinite = errors.New("gather: NaN or Inf in times or offsets")
)

// gatherErrorf wraps a sentinel with the constructor tag and a detail message.
func gatherErrorf(detail string, err error) error {
	return fmt.Errorf("gather.New: %s: %w", detail, err)
}
