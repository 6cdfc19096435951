// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/katalvlaran/velan/coherency"
	"github.com/katalvlaran/velan/semblance"
	"github.com/katalvlaran/velan/synthetic"
	"github.com/katalvlaran/velan/velocity"
	"gopkg.in/yaml.v3"
)

// Analysis modes.
const (
	modeVertical = "vertical"
	modeResidual = "residual"
)

// Config represents the complete run configuration
type Config struct {
	Gather   synthetic.Config `yaml:"gather"`
	Analysis AnalysisConfig   `yaml:"analysis"`
	Output   OutputConfig     `yaml:"output"`
	Logging  LoggingConfig    `yaml:"logging"`
}

// AnalysisConfig selects the map and its parameters
type AnalysisConfig struct {
	Mode       string           `yaml:"mode"`
	Velocities GridConfig       `yaml:"velocities"`
	Window     *int             `yaml:"window"`
	Formula    string           `yaml:"formula"`
	S          float64          `yaml:"s"`
	MinLive    int              `yaml:"min_live"`
	Deviation  float64          `yaml:"deviation"`
	Workers    int              `yaml:"workers"`
	Curve      []velocity.Point `yaml:"curve"`
}

// GridConfig describes a linear candidate-velocity grid in m/s
type GridConfig struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Count int     `yaml:"count"`
}

// OutputConfig contains result destination settings
type OutputConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return Parse(raw)
}

// Parse decodes YAML bytes, applies defaults and validates.
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Analysis.Mode == "" {
		c.Analysis.Mode = modeVertical
	}
	if c.Analysis.Window == nil {
		w := semblance.DefaultWindow
		c.Analysis.Window = &w
	}
	if c.Analysis.Formula == "" {
		c.Analysis.Formula = coherency.NameSemblance
	}
	if c.Analysis.Deviation == 0 && c.Analysis.Mode == modeResidual {
		c.Analysis.Deviation = semblance.DefaultDeviation
	}
	if c.Analysis.Velocities.Count == 0 {
		c.Analysis.Velocities.Count = 100
	}
	if c.Gather.Frequency == 0 {
		c.Gather.Frequency = 25
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate rejects configurations that cannot run.
func (c *Config) Validate() error {
	if err := c.Gather.Validate(); err != nil {
		return fmt.Errorf("gather: %w", err)
	}
	a := c.Analysis
	switch a.Mode {
	case modeVertical:
		if !(a.Velocities.Min > 0) || a.Velocities.Max < a.Velocities.Min || a.Velocities.Count < 1 {
			return errors.New("analysis.velocities: need 0 < min <= max and count >= 1")
		}
	case modeResidual:
		if len(a.Curve) < 2 {
			return errors.New("analysis.curve: residual mode needs at least two picks")
		}
		if a.Deviation < 0 || a.Deviation >= 1 {
			return fmt.Errorf("analysis.deviation=%g: must be in [0, 1)", a.Deviation)
		}
	default:
		return fmt.Errorf("analysis.mode=%q: must be %q or %q", a.Mode, modeVertical, modeResidual)
	}
	if *a.Window < 0 {
		return fmt.Errorf("analysis.window=%d: must be >= 0 samples", *a.Window)
	}
	if a.Workers < 0 {
		return fmt.Errorf("analysis.workers=%d: must be >= 0", a.Workers)
	}
	if _, err := coherency.ByName(a.Formula, a.S, a.MinLive); err != nil {
		return fmt.Errorf("analysis.formula: %w", err)
	}

	return nil
}

// Options converts the analysis section into semblance options.
func (a AnalysisConfig) Options() ([]semblance.Option, error) {
	f, err := coherency.ByName(a.Formula, a.S, a.MinLive)
	if err != nil {
		return nil, err
	}
	opts := []semblance.Option{
		semblance.WithFormula(f),
		semblance.WithWindow(*a.Window),
		semblance.WithDeviation(a.Deviation),
	}
	if a.Workers > 0 {
		opts = append(opts, semblance.WithWorkers(a.Workers))
	}

	return opts, nil
}
