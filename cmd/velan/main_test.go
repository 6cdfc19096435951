package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/velan/coherency"
	"github.com/katalvlaran/velan/semblance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

const minimalYAML = `
gather:
  traces: 12
  samples: 150
  sample_rate: 4
  max_offset: 1200
  reflectors:
    - {t0: 300, velocity: 2000, amplitude: 1}
analysis:
  velocities: {min: 1500, max: 2500, count: 11}
`

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, modeVertical, cfg.Analysis.Mode)
	require.NotNil(t, cfg.Analysis.Window)
	assert.Equal(t, semblance.DefaultWindow, *cfg.Analysis.Window)
	assert.Equal(t, coherency.NameSemblance, cfg.Analysis.Formula)
	assert.Equal(t, 0.0, cfg.Analysis.Deviation)
	assert.Equal(t, 25.0, cfg.Gather.Frequency)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 11, cfg.Analysis.Velocities.Count)
}

func TestParseExplicitZeroWindow(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML + "  window: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, *cfg.Analysis.Window)
}

func TestParseResidualDefaults(t *testing.T) {
	raw := minimalYAML + `  mode: residual
  curve:
    - {time: 0, velocity: 1800}
    - {time: 600, velocity: 2200}
`
	cfg, err := Parse([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, semblance.DefaultDeviation, cfg.Analysis.Deviation)
	assert.Len(t, cfg.Analysis.Curve, 2)
	assert.Equal(t, 2200.0, cfg.Analysis.Curve[1].Velocity)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"bad mode":        minimalYAML + "  mode: diagonal\n",
		"negative window": minimalYAML + "  window: -2\n",
		"unknown formula": minimalYAML + "  formula: stack\n",
		"bad s":           minimalYAML + "  formula: stacked_amplitude\n  s: 2\n",
		"residual curve":  minimalYAML + "  mode: residual\n",
		"no traces":       "analysis:\n  velocities: {min: 1, max: 2}\n",
		"not yaml":        "gather: [",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := Load("velan.example.yaml")
	require.NoError(t, err)
	assert.Len(t, cfg.Gather.Reflectors, 3)
	assert.Equal(t, 131, cfg.Analysis.Velocities.Count)
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger(LoggingConfig{Level: "debug", Development: true})
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = newLogger(LoggingConfig{Level: "loud"})
	require.Error(t, err)
}

func TestRunVertical(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML + "  window: 4\n"))
	require.NoError(t, err)
	cfg.Output.Path = filepath.Join(t.TempDir(), "vertical.msgpack")

	require.NoError(t, run(cfg, zaptest.NewLogger(t)))

	f, err := os.Open(cfg.Output.Path)
	require.NoError(t, err)
	defer f.Close()
	res, err := semblance.DecodeResult(f)
	require.NoError(t, err)

	assert.Equal(t, semblance.KindVertical, res.Kind)
	assert.Equal(t, 4, res.Window)
	require.Len(t, res.Coherency, 150)
	assert.Len(t, res.Coherency[0], 11)
	assert.Len(t, res.Velocities, 11)
}

func TestRunResidual(t *testing.T) {
	raw := minimalYAML + `  mode: residual
  window: 3
  workers: 2
  deviation: 0.1
  formula: weighted_semblance
  s: 0.5
  min_live: 2
  curve:
    - {time: 0, velocity: 1800}
    - {time: 600, velocity: 2200}
`
	cfg, err := Parse([]byte(raw))
	require.NoError(t, err)
	cfg.Output.Path = filepath.Join(t.TempDir(), "residual.msgpack")

	require.NoError(t, run(cfg, zap.NewNop()))

	f, err := os.Open(cfg.Output.Path)
	require.NoError(t, err)
	defer f.Close()
	res, err := semblance.DecodeResult(f)
	require.NoError(t, err)

	assert.Equal(t, semblance.KindResidual, res.Kind)
	assert.Equal(t, coherency.NameWeightedSemblance, res.Formula)
	assert.Equal(t, 0.1, res.Deviation)
	assert.Len(t, res.Left, 150)
	assert.Len(t, res.Right, 150)
	for i := range res.Left {
		assert.LessOrEqual(t, res.Left[i], res.Right[i])
	}
}

func TestRunWithoutOutput(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)
	require.NoError(t, run(cfg, zap.NewNop()))
}
