// SPDX-License-Identifier: MIT

// Package semblance: functional configuration for coherency maps.
// Options are collected into an unexported-field Options value and
// validated once by gatherOptions; constructors return the resulting error.
package semblance

import (
	"math"
	"runtime"

	"github.com/katalvlaran/velan/coherency"
	"go.uber.org/zap"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultWindow is the smoothing half-width in samples.
	DefaultWindow = 25

	// DefaultDeviation is the relative half-width of the residual velocity band.
	DefaultDeviation = 0.2

	// Epsilon guards the window ratio denominator.
	Epsilon = 1e-6

	// LeakageEpsilon guards the leakage metric denominator.
	LeakageEpsilon = 1e-11
)

// DefaultFormula is the classic semblance without a live-trace gate.
var DefaultFormula coherency.Formula = coherency.Semblance{MinLive: 1}

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	window    int
	deviation float64
	formula   coherency.Formula
	workers   int
	logger    *zap.Logger
}

// WithWindow sets the smoothing half-width in samples (≥ 0).
func WithWindow(samples int) Option {
	return func(o *Options) { o.window = samples }
}

// WithDeviation sets the residual band relative half-width d in [0, 1).
// Ignored by VerticalMap.
func WithDeviation(d float64) Option {
	return func(o *Options) { o.deviation = d }
}

// WithFormula selects the coherency formula.
func WithFormula(f coherency.Formula) Option {
	return func(o *Options) { o.formula = f }
}

// WithWorkers bounds the number of goroutines computing velocity columns.
func WithWorkers(n int) Option {
	return func(o *Options) { o.workers = n }
}

// WithLogger attaches a logger; nil restores the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		window:    DefaultWindow,
		deviation: DefaultDeviation,
		formula:   DefaultFormula,
		workers:   runtime.GOMAXPROCS(0),
		logger:    zap.NewNop(),
	}
}

// gatherOptions applies opts over the defaults and validates the result.
// Errors: ErrNegativeWindow, ErrBadDeviation, ErrNilFormula, ErrBadWorkers.
func gatherOptions(opts ...Option) (Options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	switch {
	case o.window < 0:
		return o, ErrNegativeWindow
	case math.IsNaN(o.deviation) || o.deviation < 0 || o.deviation >= 1:
		return o, ErrBadDeviation
	case o.formula == nil:
		return o, ErrNilFormula
	case o.workers < 1:
		return o, ErrBadWorkers
	}

	return o, nil
}
