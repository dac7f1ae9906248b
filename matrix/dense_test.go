// SPDX-License-Identifier: MIT

package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/spotsynth/matrix"
	"github.com/stretchr/testify/require"
)

// mustDense allocates an r×c Dense filled row-major from vals or fails the test.
func mustDense(t *testing.T, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err)

	return d
}

func TestNewDense_Shapes(t *testing.T) {
	t.Parallel()

	d, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.Equal(t, 2, d.Rows())
	require.Equal(t, 3, d.Cols())

	z, err := matrix.NewDense(0, 4)
	require.NoError(t, err)
	require.Equal(t, 0, z.Rows())
	require.Equal(t, 4, z.Cols())

	_, err = matrix.NewDense(-1, 2)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDenseFrom(2, 2, []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestDense_AtSetBounds(t *testing.T) {
	t.Parallel()

	d := mustDense(t, 2, 2, []float64{1, 2, 3, 4})
	v, err := d.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, 3.0, v)

	require.NoError(t, d.Set(0, 1, 9))
	v, _ = d.At(0, 1)
	require.Equal(t, 9.0, v)

	cases := [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}}
	for _, c := range cases {
		if _, err = d.At(c[0], c[1]); !errors.Is(err, matrix.ErrOutOfRange) {
			t.Fatalf("At(%d,%d): want ErrOutOfRange, got %v", c[0], c[1], err)
		}
		if err = d.Set(c[0], c[1], 1); !errors.Is(err, matrix.ErrOutOfRange) {
			t.Fatalf("Set(%d,%d): want ErrOutOfRange, got %v", c[0], c[1], err)
		}
	}

	require.ErrorIs(t, d.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, d.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)
}

func TestDense_RowCopiesAndSetRow(t *testing.T) {
	t.Parallel()

	d := mustDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	row, err := d.Row(1)
	require.NoError(t, err)
	require.Equal(t, []float64{4, 5, 6}, row)

	// Mutating the copy must not leak into d.
	row[0] = 100
	v, _ := d.At(1, 0)
	require.Equal(t, 4.0, v)

	require.NoError(t, d.SetRow(0, []float64{7, 8, 9}))
	row, _ = d.Row(0)
	require.Equal(t, []float64{7, 8, 9}, row)

	require.ErrorIs(t, d.SetRow(0, []float64{1}), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, d.SetRow(5, []float64{1, 2, 3}), matrix.ErrOutOfRange)
	_, err = d.Row(2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestDense_CloneIndependent(t *testing.T) {
	t.Parallel()

	d := mustDense(t, 1, 2, []float64{1, 2})
	c := d.Clone()
	require.NoError(t, c.Set(0, 0, 5))
	v, _ := d.At(0, 0)
	require.Equal(t, 1.0, v)
	require.Equal(t, "[1, 2]\n", d.String())
}
