// SPDX-License-Identifier: MIT

package semblance

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Result kinds.
const (
	KindVertical = "vertical"
	KindResidual = "residual"
)

// Result is a self-describing snapshot of a map, suitable for serialization.
type Result struct {
	Kind       string      `msgpack:"kind"`
	Formula    string      `msgpack:"formula"`
	Window     int         `msgpack:"window"`
	Deviation  float64     `msgpack:"deviation,omitempty"`
	Times      []float64   `msgpack:"times"`
	Velocities []float64   `msgpack:"velocities"`
	Left       []int       `msgpack:"left,omitempty"`
	Right      []int       `msgpack:"right,omitempty"`
	Coherency  [][]float64 `msgpack:"coherency"`
	Checksum   uint64      `msgpack:"checksum"`
}

// Result snapshots the vertical map.
func (m *VerticalMap) Result() Result {
	return Result{
		Kind:       KindVertical,
		Formula:    m.formula,
		Window:     m.window,
		Times:      m.Times(),
		Velocities: m.Velocities(),
		Coherency:  m.coherency.Rows2D(),
		Checksum:   m.Checksum(),
	}
}

// Result snapshots the residual map.
func (m *ResidualMap) Result() Result {
	left, right := m.Bounds()

	return Result{
		Kind:       KindResidual,
		Formula:    m.formula,
		Window:     m.window,
		Deviation:  m.deviation,
		Times:      m.Times(),
		Velocities: m.Velocities(),
		Left:       left,
		Right:      right,
		Coherency:  m.coherency.Rows2D(),
		Checksum:   m.Checksum(),
	}
}

// EncodeResult writes r to w as msgpack.
func EncodeResult(w io.Writer, r Result) error {
	if err := msgpack.NewEncoder(w).Encode(&r); err != nil {
		return fmt.Errorf("semblance.EncodeResult: %w", err)
	}

	return nil
}

// DecodeResult reads one msgpack Result from rd.
func DecodeResult(rd io.Reader) (Result, error) {
	var r Result
	if err := msgpack.NewDecoder(rd).Decode(&r); err != nil {
		return Result{}, fmt.Errorf("semblance.DecodeResult: %w", err)
	}

	return r, nil
}
