// SPDX-License-Identifier: MIT

package velocity

import (
	"math"

	"gonum.org/v1/gonum/interp"
)

const (
	opNewCurve = "NewCurve"
)

// Point is a single velocity pick.
type Point struct {
	Time     float64 `yaml:"time" msgpack:"time"`         // ms
	Velocity float64 `yaml:"velocity" msgpack:"velocity"` // m/s
}

// Curve is an immutable piecewise-linear velocity trend.
type Curve struct {
	times []float64
	vels  []float64
	pl    interp.PiecewiseLinear
}

// NewCurve validates picks and builds the interpolator.
// MAIN DESCRIPTION:
//   - Picks must be ≥2, strictly increasing in time, with finite positive velocities.
//
// Implementation:
//   - Stage 1: validate count, ordering and values.
//   - Stage 2: copy into parallel slices and fit gonum's PiecewiseLinear.
//
// Errors:
//   - ErrTooFewPoints, ErrTimesNotIncreasing, ErrNonPositiveVelocity.
//
// Complexity:
//   - Time O(n), Space O(n).
func NewCurve(points []Point) (*Curve, error) {
	times := make([]float64, len(points))
	vels := make([]float64, len(points))
	for i, p := range points {
		times[i], vels[i] = p.Time, p.Velocity
	}

	return newCurve(times, vels)
}

// NewCurveFromSlices is NewCurve over parallel time/velocity slices.
func NewCurveFromSlices(times, velocities []float64) (*Curve, error) {
	if len(times) != len(velocities) {
		return nil, velocityErrorf(opNewCurve, ErrLengthMismatch)
	}

	return newCurve(append([]float64(nil), times...), append([]float64(nil), velocities...))
}

// newCurve takes ownership of times and vels.
func newCurve(times, vels []float64) (*Curve, error) {
	if len(times) < 2 {
		return nil, velocityErrorf(opNewCurve, ErrTooFewPoints)
	}
	for i := range times {
		if math.IsNaN(times[i]) || math.IsInf(times[i], 0) {
			return nil, velocityErrorf(opNewCurve, ErrTimesNotIncreasing)
		}
		if i > 0 && times[i] <= times[i-1] {
			return nil, velocityErrorf(opNewCurve, ErrTimesNotIncreasing)
		}
		if !(vels[i] > 0) || math.IsInf(vels[i], 0) {
			return nil, velocityErrorf(opNewCurve, ErrNonPositiveVelocity)
		}
	}

	c := &Curve{times: times, vels: vels}
	// Fit cannot fail after the checks above.
	if err := c.pl.Fit(c.times, c.vels); err != nil {
		return nil, velocityErrorf(opNewCurve, err)
	}

	return c, nil
}

// At evaluates the curve at t (ms), extrapolating the end segments linearly.
// The result may be ≤ 0 far outside the picked range; callers clip it.
// Complexity: O(log n).
func (c *Curve) At(t float64) float64 {
	n := len(c.times)
	switch {
	case t < c.times[0]:
		slope := (c.vels[1] - c.vels[0]) / (c.times[1] - c.times[0])
		return c.vels[0] + slope*(t-c.times[0])
	case t > c.times[n-1]:
		slope := (c.vels[n-1] - c.vels[n-2]) / (c.times[n-1] - c.times[n-2])
		return c.vels[n-1] + slope*(t-c.times[n-1])
	default:
		return c.pl.Predict(t)
	}
}

// AtTimes evaluates the curve at every element of times.
// Complexity: O(m log n).
func (c *Curve) AtTimes(times []float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = c.At(t)
	}

	return out
}

// Points returns a copy of the picks.
func (c *Curve) Points() []Point {
	out := make([]Point, len(c.times))
	for i := range c.times {
		out[i] = Point{Time: c.times[i], Velocity: c.vels[i]}
	}

	return out
}

// Len returns the number of picks.
func (c *Curve) Len() int { return len(c.times) }
