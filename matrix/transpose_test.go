package matrix_test

import (
	"testing"

	"github.com/katalvlaran/velan/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type and force the generic path.
type hide struct{ matrix.Matrix }

// TestTranspose checks the Dense fast path and the generic fallback agree.
func TestTranspose(t *testing.T) {
	m, err := matrix.NewDenseRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	fast, err := matrix.Transpose(m)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, fast.Rows2D())

	slow, err := matrix.Transpose(hide{m})
	require.NoError(t, err)
	require.Equal(t, fast.Checksum(), slow.Checksum())
}

// TestTransposeNil ensures nil input is rejected.
func TestTransposeNil(t *testing.T) {
	_, err := matrix.Transpose(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	var d *matrix.Dense
	_, err = matrix.Transpose(d)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
