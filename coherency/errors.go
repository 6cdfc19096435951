// SPDX-License-Identifier: MIT

package coherency

import "errors"

var (
	// ErrUnknownFormula indicates a formula name not listed by Names().
	ErrUnknownFormula = errors.New("coherency: unknown formula")

	// ErrBadParameter indicates an out-of-range mixing coefficient or live-trace threshold.
	ErrBadParameter = errors.New("coherency: invalid formula parameter")
)
