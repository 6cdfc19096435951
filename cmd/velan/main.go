// SPDX-License-Identifier: MIT

// Command velan computes a velocity-coherency map for a synthetic CMP gather
// described by a YAML file and writes the result as msgpack.
//
// Usage:
//
//	velan -config velan.yaml [-out result.msgpack]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/katalvlaran/velan/gather"
	"github.com/katalvlaran/velan/semblance"
	"github.com/katalvlaran/velan/synthetic"
	"github.com/katalvlaran/velan/velocity"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/gonum/floats"
)

func main() {
	configPath := flag.String("config", "velan.yaml", "path to YAML configuration")
	outPath := flag.String("out", "", "override output.path")
	flag.Parse()

	cfg, err := Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *outPath != "" {
		cfg.Output.Path = *outPath
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Failed to compute coherency map", zap.Error(err))
	}
}

// newLogger builds a production or development zap logger at the configured level.
func newLogger(c LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}

// run builds the gather, computes the configured map and writes the result.
func run(cfg *Config, logger *zap.Logger) error {
	g, err := synthetic.CMP(cfg.Gather)
	if err != nil {
		return err
	}
	logger.Info("Synthetic gather built",
		zap.Int("traces", g.NTraces()),
		zap.Int("samples", g.NSamples()),
		zap.Float64("sampleRate", g.SampleRate()),
	)

	res, err := compute(cfg.Analysis, g, logger)
	if err != nil {
		return err
	}
	logger.Info("Coherency map computed",
		zap.String("kind", res.Kind),
		zap.String("formula", res.Formula),
		zap.Int("rows", len(res.Coherency)),
		zap.Int("cols", len(res.Coherency[0])),
		zap.Uint64("checksum", res.Checksum),
	)

	if cfg.Output.Path == "" {
		return nil
	}
	f, err := os.Create(cfg.Output.Path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()
	if err := semblance.EncodeResult(f, res); err != nil {
		return err
	}
	logger.Info("Result written", zap.String("path", cfg.Output.Path))

	return nil
}

// compute dispatches on the analysis mode.
func compute(a AnalysisConfig, g *gather.Gather, logger *zap.Logger) (semblance.Result, error) {
	opts, err := a.Options()
	if err != nil {
		return semblance.Result{}, err
	}
	opts = append(opts, semblance.WithLogger(logger))

	if a.Mode == modeResidual {
		curve, err := velocity.NewCurve(a.Curve)
		if err != nil {
			return semblance.Result{}, err
		}
		grid, err := velocity.ResidualGrid(curve, g.RawTimes(), a.Velocities.Count, a.Deviation)
		if err != nil {
			return semblance.Result{}, err
		}
		rm, err := semblance.NewResidualMap(g, curve, grid, opts...)
		if err != nil {
			return semblance.Result{}, err
		}

		return rm.Result(), nil
	}

	grid, err := velocity.LinearGrid(a.Velocities.Min, a.Velocities.Max, a.Velocities.Count)
	if err != nil {
		return semblance.Result{}, err
	}
	vm, err := semblance.NewVerticalMap(g, grid, opts...)
	if err != nil {
		return semblance.Result{}, err
	}
	peaks := vm.MaxPerTime()
	logger.Debug("Peak coherency", zap.Float64("max", floats.Max(peaks)))

	return vm.Result(), nil
}
