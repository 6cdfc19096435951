// SPDX-License-Identifier: MIT

package nmo

import (
	"errors"
	"fmt"
)

var (
	// ErrNilInput indicates a nil gather or matrix.
	ErrNilInput = errors.New("nmo: nil input")

	// ErrVelocitiesMismatch indicates len(velocities) != number of samples.
	ErrVelocitiesMismatch = errors.New("nmo: velocities length does not match sample count")

	// ErrNonPositiveVelocity indicates a zero, negative or non-finite velocity.
	ErrNonPositiveVelocity = errors.New("nmo: velocities must be finite and > 0")

	// ErrShiftsMismatch indicates len(shifts) != number of traces.
	ErrShiftsMismatch = errors.New("nmo: shifts length does not match trace count")
)

// nmoErrorf wraps a sentinel with the operation tag.
func nmoErrorf(tag string, err error) error {
	return fmt.Errorf("nmo.%s: %w", tag, err)
}
