// SPDX-License-Identifier: MIT

package synthetic

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/velan/gather"
	"github.com/katalvlaran/velan/matrix"
)

// ErrBadConfig indicates an unusable synthetic configuration.
var ErrBadConfig = errors.New("synthetic: invalid config")

// Reflector is one hyperbolic event.
type Reflector struct {
	T0        float64 `yaml:"t0"`        // zero-offset time, ms
	Velocity  float64 `yaml:"velocity"`  // m/s
	Amplitude float64 `yaml:"amplitude"` // peak amplitude
}

// Config describes the geometry and events of a synthetic gather.
type Config struct {
	NTraces    int         `yaml:"traces"`
	NSamples   int         `yaml:"samples"`
	SampleRate float64     `yaml:"sample_rate"` // ms
	MinOffset  float64     `yaml:"min_offset"`  // m
	MaxOffset  float64     `yaml:"max_offset"`  // m
	Frequency  float64     `yaml:"frequency"`   // Ricker peak frequency, Hz
	Noise      float64     `yaml:"noise"`       // Gaussian noise std-dev
	Seed       int64       `yaml:"seed"`
	Reflectors []Reflector `yaml:"reflectors"`
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch {
	case c.NTraces < 1:
		return fmt.Errorf("traces=%d: %w", c.NTraces, ErrBadConfig)
	case c.NSamples < 2:
		return fmt.Errorf("samples=%d: %w", c.NSamples, ErrBadConfig)
	case !(c.SampleRate > 0):
		return fmt.Errorf("sample_rate=%g: %w", c.SampleRate, ErrBadConfig)
	case c.MaxOffset < c.MinOffset:
		return fmt.Errorf("offsets [%g, %g]: %w", c.MinOffset, c.MaxOffset, ErrBadConfig)
	case !(c.Frequency > 0):
		return fmt.Errorf("frequency=%g: %w", c.Frequency, ErrBadConfig)
	case c.Noise < 0:
		return fmt.Errorf("noise=%g: %w", c.Noise, ErrBadConfig)
	}
	for i, r := range c.Reflectors {
		if !(r.Velocity > 0) {
			return fmt.Errorf("reflector %d velocity=%g: %w", i, r.Velocity, ErrBadConfig)
		}
	}

	return nil
}

// Times returns the uniform sample times starting at 0 ms.
func (c Config) Times() []float64 {
	out := make([]float64, c.NSamples)
	for i := range out {
		out[i] = float64(i) * c.SampleRate
	}

	return out
}

// Offsets returns NTraces offsets evenly spaced over [MinOffset, MaxOffset].
func (c Config) Offsets() []float64 {
	out := make([]float64, c.NTraces)
	if c.NTraces == 1 {
		out[0] = c.MinOffset
		return out
	}
	step := (c.MaxOffset - c.MinOffset) / float64(c.NTraces-1)
	for i := range out {
		out[i] = c.MinOffset + float64(i)*step
	}

	return out
}

// Ricker returns the Ricker wavelet value at time t (ms) for peak frequency f (Hz).
func Ricker(t, f float64) float64 {
	a := math.Pi * f * t / 1000
	a *= a

	return (1 - 2*a) * math.Exp(-a)
}

// CMP builds the gather described by c.
// MAIN DESCRIPTION:
//   - Amplitude(trace j, sample k) = Σ_r A_r · Ricker(times[k] - t_r(offset_j)) + noise.
//
// Errors:
//   - ErrBadConfig (wrapped), or gather.New errors.
//
// Complexity:
//   - Time O(traces · samples · reflectors).
func CMP(c Config) (*gather.Gather, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("synthetic.CMP: %w", err)
	}
	times, offsets := c.Times(), c.Offsets()
	data, err := matrix.NewDense(c.NTraces, c.NSamples)
	if err != nil {
		return nil, fmt.Errorf("synthetic.CMP: %w", err)
	}

	var rng *rand.Rand
	if c.Noise > 0 {
		rng = rand.New(rand.NewSource(c.Seed))
	}
	for j, l := range offsets {
		row := data.RawRowView(j)
		for _, r := range c.Reflectors {
			lv := l / (r.Velocity / 1000)
			tr := math.Sqrt(r.T0*r.T0 + lv*lv)
			for k, t := range times {
				row[k] += r.Amplitude * Ricker(t-tr, c.Frequency)
			}
		}
		if rng != nil {
			for k := range row {
				row[k] += c.Noise * rng.NormFloat64()
			}
		}
	}

	return gather.New(data, times, offsets)
}
